package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookcatalog/internal/author"
	"bookcatalog/internal/book"
	"bookcatalog/internal/store/memory"
)

func main() {
	dryRun := flag.Bool("memory", false, "seed in-memory stores only and print a summary (no database writes)")
	authorCount := flag.Int("authors", 50, "number of authors to generate")
	booksPerAuthor := flag.Int("books", 20, "books per author")
	flag.Parse()

	_ = godotenv.Load(".env.local")
	ctx := context.Background()

	authors, books := generate(*authorCount, *booksPerAuthor)

	if *dryRun {
		authorStore := memory.NewMemAuthors()
		bookStore := memory.NewMemBooks()
		for _, a := range authors {
			if err := authorStore.Insert(ctx, a); err != nil {
				log.Fatalf("insert author: %v", err)
			}
		}
		for _, b := range books {
			if err := bookStore.Insert(ctx, b); err != nil {
				log.Fatalf("insert book: %v", err)
			}
		}
		log.Printf("Seeded %d authors and %d books in memory", len(authors), len(books))
		return
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "bookcatalog"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to document store: %v", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()
	db := client.Database(dbName)

	authorDocs := make([]any, len(authors))
	for i, a := range authors {
		authorDocs[i] = a
	}
	bookDocs := make([]any, len(books))
	for i, b := range books {
		bookDocs[i] = b
	}

	log.Printf("Inserting %d authors...", len(authorDocs))
	if _, err := db.Collection("authors").InsertMany(ctx, authorDocs); err != nil {
		log.Fatalf("Failed to insert authors: %v", err)
	}
	log.Printf("Inserting %d books...", len(bookDocs))
	if _, err := db.Collection("books").InsertMany(ctx, bookDocs); err != nil {
		log.Fatalf("Failed to insert books: %v", err)
	}

	log.Printf("Successfully seeded %d authors and %d books!", len(authorDocs), len(bookDocs))
}

func generate(authorCount, booksPerAuthor int) ([]author.Author, []book.Book) {
	genres := []string{"Fiction", "Science Fiction", "History", "Science", "Technology", "Romance", "Mystery", "Biography", "Philosophy", "Art"}
	formats := []string{"hardcover", "paperback", "digital"}
	languages := []string{"English", "Spanish", "French", "German", "Japanese"}
	publishers := []string{"Penguin", "HarperCollins", "Oxford", "Cambridge", "MIT Press", "Springer", "Wiley"}
	states := []string{"NY", "CA", "TX", "WA", "IL", "MA", "OH", "PA"}
	firstNames := []string{"Ada", "Grace", "Alan", "Donald", "Barbara", "Edsger", "John", "Margaret", "Dennis", "Ken"}
	lastNames := []string{"Lovelace", "Hopper", "Turing", "Knuth", "Liskov", "Dijkstra", "McCarthy", "Hamilton", "Ritchie", "Thompson"}
	cities := []string{"New York", "San Francisco", "Austin", "Seattle", "Chicago", "Boston"}

	var authors []author.Author
	var books []book.Book

	for i := 0; i < authorCount; i++ {
		birthYear := 1920 + rand.Intn(70)
		a := author.Author{
			ID:            uuid.NewString(),
			FirstName:     firstNames[rand.Intn(len(firstNames))],
			LastName:      lastNames[rand.Intn(len(lastNames))],
			DateOfBirth:   fmt.Sprintf("%d-%02d-%02d", birthYear, 1+rand.Intn(12), 1+rand.Intn(28)),
			HometownCity:  cities[rand.Intn(len(cities))],
			HometownState: states[rand.Intn(len(states))],
			Books:         []string{},
		}

		for j := 0; j < booksPerAuthor; j++ {
			// Publication always after the birth year so the records pass
			// the catalog's own checks.
			pubYear := birthYear + 20 + rand.Intn(50)
			b := book.Book{
				ID:              uuid.NewString(),
				Title:           fmt.Sprintf("%s Volume %d", genres[rand.Intn(len(genres))], j+1),
				Genres:          []string{genres[rand.Intn(len(genres))]},
				PublicationDate: fmt.Sprintf("%02d/%02d/%d", 1+rand.Intn(12), 1+rand.Intn(28), pubYear),
				Publisher:       publishers[rand.Intn(len(publishers))],
				Summary:         fmt.Sprintf("A study of %s.", genres[rand.Intn(len(genres))]),
				ISBN:            fmt.Sprintf("978-%d-%04d-%04d-%d", rand.Intn(10), rand.Intn(10000), rand.Intn(10000), rand.Intn(10)),
				Language:        languages[rand.Intn(len(languages))],
				PageCount:       100 + rand.Intn(800),
				Price:           5 + rand.Float64()*95,
				Format:          []string{formats[rand.Intn(len(formats))]},
				AuthorID:        a.ID,
			}
			a.Books = append(a.Books, b.ID)
			books = append(books, b)
		}
		a.NumOfBooks = len(a.Books)
		authors = append(authors, a)
	}

	return authors, books
}
