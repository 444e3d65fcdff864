// Package wire provides dependency injection for the courier application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	cliadapter "github.com/example/courier/internal/adapters/cli"
	httpadapter "github.com/example/courier/internal/adapters/http"
	"github.com/example/courier/internal/adapters/sqlite"
	"github.com/example/courier/internal/app"
	"github.com/example/courier/internal/db"
	"github.com/example/courier/internal/ports/primary"

	"github.com/sirupsen/logrus"
)

var (
	messagingService primary.MessagingService
	once             sync.Once
)

// MessagingService returns the singleton MessagingService instance.
func MessagingService() primary.MessagingService {
	once.Do(initServices)
	return messagingService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	conversationRepo := sqlite.NewConversationRepository(database)
	messageRepo := sqlite.NewMessageRepository(database)

	messagingService = app.NewMessagingService(conversationRepo, messageRepo)
}

// MessagingAdapter returns a new MessagingAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func MessagingAdapter() *cliadapter.MessagingAdapter {
	return MessagingAdapterWithOutput(os.Stdout)
}

// MessagingAdapterWithOutput returns a new MessagingAdapter writing to the
// given output. This variant allows testing or alternate output destinations.
func MessagingAdapterWithOutput(out io.Writer) *cliadapter.MessagingAdapter {
	once.Do(initServices)
	return cliadapter.NewMessagingAdapter(messagingService, out)
}

// HTTPServer returns a new REST server over the singleton service.
func HTTPServer(logger *logrus.Logger) *httpadapter.Server {
	once.Do(initServices)
	return httpadapter.NewServer(messagingService, logger)
}
