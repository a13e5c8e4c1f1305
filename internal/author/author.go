package author

// Author is an author document. NumOfBooks and Books are denormalized from
// the book collection and maintained by the catalog coordinator; at
// quiescence NumOfBooks == len(Books) and Books holds exactly the ids of the
// books whose authorId points here.
type Author struct {
	ID            string   `json:"_id" bson:"_id" msgpack:"_id"`
	FirstName     string   `json:"first_name" bson:"first_name" msgpack:"first_name"`
	LastName      string   `json:"last_name" bson:"last_name" msgpack:"last_name"`
	DateOfBirth   string   `json:"date_of_birth" bson:"date_of_birth" msgpack:"date_of_birth"`
	HometownCity  string   `json:"hometownCity" bson:"hometownCity" msgpack:"hometownCity"`
	HometownState string   `json:"hometownState" bson:"hometownState" msgpack:"hometownState"`
	NumOfBooks    int      `json:"numOfBooks" bson:"numOfBooks" msgpack:"numOfBooks"`
	Books         []string `json:"books" bson:"books" msgpack:"books"`
}

// CreateInput is the payload for creating an author.
type CreateInput struct {
	FirstName     string `json:"first_name" validate:"required,notblank,person_name"`
	LastName      string `json:"last_name" validate:"required,notblank,person_name"`
	DateOfBirth   string `json:"date_of_birth" validate:"required,birth_date"`
	HometownCity  string `json:"hometownCity" validate:"required,notblank"`
	HometownState string `json:"hometownState" validate:"required,us_state"`
}

// UpdateInput is a partial update; nil fields are left untouched.
type UpdateInput struct {
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	DateOfBirth   *string `json:"date_of_birth"`
	HometownCity  *string `json:"hometownCity"`
	HometownState *string `json:"hometownState"`
}
