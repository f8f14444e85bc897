package main

import (
	"fmt"
	"log"

	"github.com/SherClockHolmes/webpush-go"
)

// Generates a fresh VAPID key pair for web push. Run once and put the
// output in your .env file.
func main() {
	privateKey, publicKey, err := webpush.GenerateVAPIDKeys()
	if err != nil {
		log.Fatal("Failed to generate VAPID keys:", err)
	}

	fmt.Println("VAPID_PUBLIC_KEY=" + publicKey)
	fmt.Println("VAPID_PRIVATE_KEY=" + privateKey)
	fmt.Println("VAPID_SUBSCRIBER=mailto:your-email@example.com")
}
