// Command gmail-token authorizes the Gmail lead sender once and writes the
// token file the API server reads when MAIL_TRANSPORT=gmail.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"

	"github.com/hiringdekho/hiring-dekho/internal/auth"
)

func main() {
	_ = godotenv.Load()

	credentials := flag.String("credentials", "credential.json", "OAuth client secret file")
	tokenPath := flag.String("token", "token.json", "where to write the token")
	flag.Parse()

	config, err := auth.GmailConfig(*credentials)
	if err != nil {
		log.Fatalf("Unable to load client config: %v", err)
	}

	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("\n---------------------------------------------------------\n")
	fmt.Printf("OPEN THIS LINK TO AUTHORIZE GMAIL SENDING:\n%v\n", authURL)
	fmt.Printf("---------------------------------------------------------\n")
	fmt.Printf("Paste the code here: ")

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		log.Fatalf("Unable to read authorization code: %v", err)
	}

	tok, err := config.Exchange(context.Background(), authCode)
	if err != nil {
		log.Fatalf("Unable to retrieve token from web: %v", err)
	}
	if err := auth.SaveToken(*tokenPath, tok); err != nil {
		log.Fatalf("Unable to save token: %v", err)
	}
}
