// Команда token выпускает access-токен для локальной разработки.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"cmsarticle/internal/config"
	"cmsarticle/internal/utils"
)

func main() {
	userID := flag.Int64("user", 1, "ID пользователя")
	login := flag.String("login", "admin", "логин")
	role := flag.String("role", "admin", "роль из файла моделей")
	ttl := flag.Duration("ttl", 24*time.Hour, "время жизни токена")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is empty")
		os.Exit(1)
	}

	token, err := utils.GenerateToken(cfg.JWTSecret, *userID, *login, *role, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
