// Command tokengen mints API bearer tokens for a chat user id.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/rs/zerolog/log"

	"github.com/GlebRadaev/cardstore/pkg/auth"
)

type options struct {
	Secret string `env:"JWT_SECRET" envDefault:"change-me"`
}

func main() {
	var opts options
	if err := env.Parse(&opts); err != nil {
		log.Fatal().Err(err).Msg("can't read environment")
	}

	userID := flag.Int64("user", 0, "chat user id the token is issued for")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "token lifetime")
	flag.StringVar(&opts.Secret, "secret", opts.Secret, "signing secret")
	flag.Parse()

	if *userID <= 0 {
		log.Fatal().Msg("-user must be a positive chat user id")
	}

	token, err := auth.NewJWTService(opts.Secret).GenerateJWT(*userID, time.Now().Add(*ttl))
	if err != nil {
		log.Fatal().Err(err).Msg("can't sign token")
	}
	fmt.Fprintln(os.Stdout, token)
}
