package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"bookcatalog/internal/author"
	"bookcatalog/internal/book"
	"bookcatalog/internal/cache"
	"bookcatalog/internal/catalog"
	"bookcatalog/internal/httpx"
)

func main() {
	_ = godotenv.Load(".env.local")

	serverAddress := getEnv("APP_ADDR", ":8080")
	mongoURI := getEnv("MONGO_URI", "mongodb://localhost:27017")
	mongoDatabase := getEnv("MONGO_DB", "bookcatalog")
	redisAddress := getEnv("REDIS_ADDR", "localhost:6379")
	appEnv := getEnv("APP_ENV", "development")

	logger := mustBuildLogger(appEnv)
	defer logger.Sync()

	mongoClient := mustOpenMongo(mongoURI)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(ctx)
	}()
	db := mongoClient.Database(mongoDatabase)

	redisClient := mustOpenRedis(redisAddress)
	cacheStore, err := cache.NewRedis(cache.RedisConfig{Client: redisClient, CloseClient: true})
	if err != nil {
		log.Fatalf("cannot create cache store: %v", err)
	}
	defer cacheStore.Close(context.Background())

	authorStore := author.NewMongoStore(db)
	bookStore := book.NewMongoStore(db)

	authorRepo := author.NewCachedRepo(authorStore, cacheStore, logger)
	bookRepo := book.NewCachedRepo(bookStore, cacheStore, logger)

	authorService := author.NewService(authorRepo, authorStore, logger)
	bookService := book.NewService(bookRepo)
	coordinator := catalog.NewCoordinator(authorRepo, bookRepo, authorStore, bookStore, logger)
	views := catalog.NewViews(authorRepo, bookRepo, bookStore, cacheStore, logger)

	authorHandler := author.NewHTTPHandler(authorService)
	bookHandler := book.NewHTTPHandler(bookService)
	catalogHandler := catalog.NewHTTPHandler(coordinator, views)

	router := http.NewServeMux()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			http.Error(w, "cache not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("GET /authors", authorHandler.List)
	router.HandleFunc("POST /authors", authorHandler.Create)
	router.HandleFunc("GET /authors/{id}", authorHandler.Get)
	router.HandleFunc("PATCH /authors/{id}", authorHandler.Update)
	router.HandleFunc("DELETE /authors/{id}", catalogHandler.RemoveAuthor)
	router.HandleFunc("GET /authors/{id}/books", catalogHandler.AuthorBooks)

	router.HandleFunc("GET /books", bookHandler.List)
	router.HandleFunc("POST /books", catalogHandler.AddBook)
	router.HandleFunc("GET /books/{id}", bookHandler.Get)
	router.HandleFunc("PUT /books/{id}", catalogHandler.EditBook)
	router.HandleFunc("DELETE /books/{id}", catalogHandler.RemoveBook)

	router.HandleFunc("GET /search/books/genre/{genre}", catalogHandler.BooksByGenre)
	router.HandleFunc("GET /search/books/price", catalogHandler.BooksByPriceRange)
	router.HandleFunc("GET /search/authors", catalogHandler.SearchAuthors)

	rateLimit := httpx.NewRateLimitMiddleware(
		getEnvFloat("RATE_LIMIT_RPS", 50),
		getEnvInt("RATE_LIMIT_BURST", 100),
	)

	var handler http.Handler = router
	handler = httpx.RequestSizeLimitMiddleware(1 << 20)(handler)
	handler = rateLimit.Middleware(handler)
	handler = httpx.SecurityHeadersMiddleware(handler)
	handler = httpx.CORSMiddleware(splitEnv("CORS_ORIGINS", "http://localhost:3000"))(handler)
	handler = httpx.AccessLogMiddleware(logger)(handler)
	handler = httpx.RecoveryMiddleware(logger)(handler)
	handler = httpx.RequestIDMiddleware(handler)

	httpServer := &http.Server{
		Addr:         serverAddress,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("starting server", zap.String("addr", serverAddress))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func splitEnv(key, def string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, def), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func mustBuildLogger(appEnv string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if appEnv == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	return logger
}

func mustOpenMongo(uri string) *mongo.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("cannot connect to document store: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("cannot ping document store: %v", err)
	}
	log.Println("document store connection OK")
	return client
}

func mustOpenRedis(addr string) *goredis.Client {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("cannot ping cache (%s): %v", addr, err)
	}
	log.Println("cache connection OK")
	return client
}
