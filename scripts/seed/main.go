package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratep "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jessevdk/go-flags"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/debook/engagement/internal/storage"
	"github.com/debook/engagement/internal/storage/postgres"
)

var opts = struct {
	Postgres           string `long:"postgres" env:"POSTGRES" default:"host=localhost port=5432 user=postgres password=root sslmode=disable" description:"postgres dsn"`
	PostgresMigrations string `long:"postgres.migrations" env:"POSTGRES_MIGRATIONS" default:"scripts/migrations/postgres" description:"postgres migrations directory"`

	Posts           int `long:"posts" default:"5" description:"posts to create"`
	CommentsPerPost int `long:"comments" default:"3" description:"comments per post"`
}{}

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "seed"
	parser.LongDescription = "Sample data importer"

	_, err := parser.Parse()

	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stdout)
			os.Exit(0)
		}
		logrus.WithError(err).Fatal("error occurred while parsing flags")
	}

	logrus.Info("seeding started")

	ctx := context.Background()
	s := postgres.New(mustGetDB())

	for i := 1; i <= opts.Posts; i++ {
		postID := uuid.NewString()

		if err := s.CreatePost(ctx, &storage.CreatePostParams{
			ID:        postID,
			Content:   fmt.Sprintf("This is sample post #%d", i),
			AuthorID:  fmt.Sprintf("author-%d", i%2+1),
			CreatedAt: time.Now(),
		}); err != nil {
			logrus.WithError(err).Fatal("failed to create post")
		}

		for j := 1; j <= opts.CommentsPerPost; j++ {
			if err := s.CreateComment(ctx, &storage.CreateCommentParams{
				ID:        uuid.NewString(),
				PostID:    postID,
				UserID:    fmt.Sprintf("commenter-%d", j),
				Content:   fmt.Sprintf("This is comment #%d", j),
				CreatedAt: time.Now(),
			}); err != nil {
				logrus.WithError(err).Fatal("failed to create comment")
			}
		}

		logrus.Infof("created post %s with %d comments", postID, opts.CommentsPerPost)
	}

	logrus.Info("seeding finished")
}

func mustGetDB() *sql.DB {
	db, err := sql.Open("postgres", opts.Postgres)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create postgres connection")
	}

	if err := db.PingContext(context.Background()); err != nil {
		logrus.WithError(err).Fatal("failed to ping postgres")
	}

	driver, err := migratep.WithInstance(db, &migratep.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("failed to create database migrate driver")
	}

	migrator, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", opts.PostgresMigrations), "postgres", driver)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create migrator")
	}

	switch err := migrator.Up(); err {
	case nil:
		logrus.Info("database was migrated")
	case migrate.ErrNoChange:
		logrus.Info("database is up-to-date")
	default:
		logrus.WithError(err).Fatal("failed to migrate db")
	}

	return db
}
