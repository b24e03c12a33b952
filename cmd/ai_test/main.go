package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"go-scroop-automation/internal/ai"
)

func main() {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		log.Println("GROQ_API_KEY environment variable not set. Please set it to test the classifier.")
		return
	}

	client := ai.NewGrokClient(apiKey, ai.DefaultModel)

	resume := `Backend developer, 4 years of Go, PostgreSQL and Kafka. Remote only.`
	posting := `We are looking for a Senior Go Backend Developer.
Requirements:
- 3+ years of experience with Go (Golang)
- Experience with Kafka and Redis
- Strong knowledge of PostgreSQL and microservices
- DevOps knowledge (Docker, CI/CD)`

	fmt.Println("Sending summary request to Groq...")
	summary, err := client.Complete(context.Background(), ai.SummaryPrompt(posting))
	if err != nil {
		log.Fatalf("Summary request failed: %v", err)
	}
	fmt.Println("\nSummary:")
	fmt.Println(summary)

	classifier := ai.NewClassifier(client, 3)

	fmt.Println("\nRating summary against resume...")
	rating, ok := classifier.Score(context.Background(), ai.MatchPrompt(resume, summary))
	if !ok {
		log.Fatal("Classifier could not produce a rating")
	}
	fmt.Printf("\nSuccess! Match rating: %d/10\n", rating)
}
