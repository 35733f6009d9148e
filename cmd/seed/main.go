// Command seed creates a database pre-filled with sample catalog data from
// public domain books.
// Usage: go run cmd/seed/main.go [-db path/to/bookshelf.db]
package main

import (
	"flag"
	"log"
	"os"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/authors"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/categories"
	"github.com/mrlokans/bookshelf/internal/entities"
)

const defaultSeedDatabasePath = "./bookshelf.db"

func main() {
	dbPath := flag.String("db", defaultSeedDatabasePath, "path to the database file")
	flag.Parse()

	log.Printf("Seeding database at %s...", *dbPath)

	// Delete existing database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	authorRepo := authors.NewRepository(db.DB)
	categoryRepo := categories.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)

	authorIDs := make(map[string]uint)
	for _, author := range sampleAuthors() {
		a := author
		if err := authorRepo.Create(&a); err != nil {
			log.Fatalf("Failed to create author %s: %v", a.Name, err)
		}
		authorIDs[a.Name] = a.ID
		log.Printf("Created author: %s", a.Name)
	}

	categoryIDs := make(map[string]uint)
	for _, category := range sampleCategories() {
		c := category
		if err := categoryRepo.Create(&c); err != nil {
			log.Fatalf("Failed to create category %s: %v", c.Name, err)
		}
		categoryIDs[c.Name] = c.ID
		log.Printf("Created category: %s", c.Name)
	}

	for _, sb := range sampleBooks() {
		book := entities.Book{
			Title:         sb.title,
			Description:   sb.description,
			PublishedYear: sb.year,
			AuthorID:      authorIDs[sb.author],
			CategoryID:    categoryIDs[sb.category],
		}
		if err := bookRepo.Create(&book); err != nil {
			log.Printf("Failed to create book %s: %v", book.Title, err)
			continue
		}
		log.Printf("Created book: %s by %s (%d)", book.Title, sb.author, sb.year)
	}

	log.Println("Database seeded successfully!")
}

func sampleAuthors() []entities.Author {
	return []entities.Author{
		{
			Name: "Marcus Aurelius",
			Bio:  "Roman emperor from 161 to 180 AD and Stoic philosopher, best known for his personal writings collected as Meditations.",
		},
		{
			Name: "Jane Austen",
			Bio:  "English novelist known for her six major novels interpreting and critiquing the British landed gentry of the late 18th century.",
		},
		{
			Name: "Leo Tolstoy",
			Bio:  "Russian writer regarded as one of the greatest authors of all time, author of War and Peace and Anna Karenina.",
		},
		{
			Name: "Fyodor Dostoevsky",
			Bio:  "Russian novelist whose works explore the human condition in the troubled atmosphere of 19th-century Russia.",
		},
		{
			Name: "Mary Shelley",
			Bio:  "English novelist who wrote the Gothic novel Frankenstein; or, The Modern Prometheus at the age of eighteen.",
		},
		{
			Name: "Charles Darwin",
			Bio:  "English naturalist whose theory of evolution by natural selection became the foundation of modern evolutionary studies.",
		},
		{
			Name: "Oscar Wilde",
			Bio:  "Irish poet and playwright, one of the most popular writers in London in the early 1890s.",
		},
	}
}

func sampleCategories() []entities.Category {
	return []entities.Category{
		{
			Name:        "Philosophy",
			Description: "Works examining fundamental questions about existence, knowledge, values and reason.",
		},
		{
			Name:        "Fiction",
			Description: "Novels and stories created from the imagination.",
		},
		{
			Name:        "Science",
			Description: "Works on natural sciences and the scientific method.",
		},
	}
}

type sampleBook struct {
	title       string
	description string
	year        int
	author      string
	category    string
}

func sampleBooks() []sampleBook {
	return []sampleBook{
		{
			title:       "Meditations",
			description: "A series of personal writings recording private notes to himself and ideas on Stoic philosophy.",
			year:        180,
			author:      "Marcus Aurelius",
			category:    "Philosophy",
		},
		{
			title:       "Pride and Prejudice",
			description: "A novel of manners following the character development of Elizabeth Bennet, who learns about the repercussions of hasty judgments. Marriage, money and love in Georgian England.",
			year:        1813,
			author:      "Jane Austen",
			category:    "Fiction",
		},
		{
			title:       "War and Peace",
			description: "A chronicle of the French invasion of Russia and its impact on Tsarist society through the stories of five aristocratic families.",
			year:        1869,
			author:      "Leo Tolstoy",
			category:    "Fiction",
		},
		{
			title:       "Anna Karenina",
			description: "A tragedy of desire and betrayal set against the backdrop of Russian high society.",
			year:        1878,
			author:      "Leo Tolstoy",
			category:    "Fiction",
		},
		{
			title:       "Crime and Punishment",
			description: "The mental anguish and moral dilemmas of an impoverished ex-student who murders a pawnbroker for her money.",
			year:        1866,
			author:      "Fyodor Dostoevsky",
			category:    "Fiction",
		},
		{
			title:       "Frankenstein",
			description: "A young scientist creates a sapient creature in an unorthodox scientific experiment.",
			year:        1818,
			author:      "Mary Shelley",
			category:    "Fiction",
		},
		{
			title:       "On the Origin of Species",
			description: "The foundational work of evolutionary biology, introducing the theory that populations evolve through natural selection.",
			year:        1859,
			author:      "Charles Darwin",
			category:    "Science",
		},
		{
			title:       "The Picture of Dorian Gray",
			description: "A philosophical novel about a man who sells his soul for eternal youth while his portrait ages in his stead.",
			year:        1890,
			author:      "Oscar Wilde",
			category:    "Fiction",
		},
	}
}
