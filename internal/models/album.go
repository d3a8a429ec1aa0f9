package models

// Album представляет альбом музыкального каталога.
type Album struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Year          int    `json:"year"`
	NumberOfSongs int    `json:"number_of_songs"`
	CoverImage    string `json:"cover_image"`
	AlbumLink     string `json:"album_link"`
}

// AlbumInput представляет тело запроса на создание или частичное обновление
// альбома. Поля-указатели позволяют отличить отсутствующее в JSON поле от
// переданного нулевого значения: при обновлении меняются только те поля,
// которые явно присутствовали в запросе.
type AlbumInput struct {
	Title         *string `json:"title"`
	Year          *int    `json:"year"`
	NumberOfSongs *int    `json:"number_of_songs"`
	CoverImage    *string `json:"cover_image"`
	AlbumLink     *string `json:"album_link"`
}

// Apply переносит заполненные поля входных данных в альбом.
// Отсутствующие поля оставляют прежние значения.
func (in *AlbumInput) Apply(a *Album) {
	if in.Title != nil {
		a.Title = *in.Title
	}
	if in.Year != nil {
		a.Year = *in.Year
	}
	if in.NumberOfSongs != nil {
		a.NumberOfSongs = *in.NumberOfSongs
	}
	if in.CoverImage != nil {
		a.CoverImage = *in.CoverImage
	}
	if in.AlbumLink != nil {
		a.AlbumLink = *in.AlbumLink
	}
}

// MessageResponse представляет тело ответа с информационным сообщением.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse представляет тело ответа с сообщением об ошибке.
type ErrorResponse struct {
	Error string `json:"error"`
}
