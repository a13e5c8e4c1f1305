package book

// Book is a book document. AuthorID references an existing author; the
// author's denormalized books/numOfBooks fields are maintained by the
// catalog coordinator on every book mutation.
type Book struct {
	ID              string   `json:"_id" bson:"_id" msgpack:"_id"`
	Title           string   `json:"title" bson:"title" msgpack:"title"`
	Genres          []string `json:"genres" bson:"genres" msgpack:"genres"`
	PublicationDate string   `json:"publicationDate" bson:"publicationDate" msgpack:"publicationDate"`
	Publisher       string   `json:"publisher" bson:"publisher" msgpack:"publisher"`
	Summary         string   `json:"summary" bson:"summary" msgpack:"summary"`
	ISBN            string   `json:"isbn" bson:"isbn" msgpack:"isbn"`
	Language        string   `json:"language" bson:"language" msgpack:"language"`
	PageCount       int      `json:"pageCount" bson:"pageCount" msgpack:"pageCount"`
	Price           float64  `json:"price" bson:"price" msgpack:"price"`
	Format          []string `json:"format" bson:"format" msgpack:"format"`
	AuthorID        string   `json:"authorId" bson:"authorId" msgpack:"authorId"`
}
