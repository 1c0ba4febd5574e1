package main

import (
	"flag"

	"codeberg.org/actas/server/internal/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	addr := flag.String("addr", ":9090", "listen address")
	callback := flag.String("callback", "http://localhost:8080/authenticate", "callback URL of the actas server")
	email := flag.String("email", "dev@example.com", "email of the signed-in user")
	flag.Parse()

	provider := newMockProvider(*callback, mockUser{
		ID:        "user_dev",
		Email:     *email,
		FirstName: "Dev",
		LastName:  "User",
	})

	router := gin.Default()
	provider.routes(router)

	logger.Info("mock identity provider listening",
		"addr", *addr,
		"authorize_url", "http://localhost"+*addr+"/authorize",
		"token_url", "http://localhost"+*addr+"/token",
	)

	if err := router.Run(*addr); err != nil {
		logger.Fatal("mock identity provider stopped", "error", err)
	}
}
