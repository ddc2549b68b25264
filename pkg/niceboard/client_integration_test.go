package niceboard

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestListIntegration(t *testing.T) {
	apiKey := os.Getenv("NICEBOARD_API_KEY")
	if apiKey == "" {
		t.Skip("NICEBOARD_API_KEY must be set to run this test")
	}

	client, err := NewClient(Config{
		APIKey:  apiKey,
		BaseURL: os.Getenv("NICEBOARD_BASE_URL"),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	types, err := client.JobTypes.List(ctx)
	if err != nil {
		t.Fatalf("JobTypes.List: %v", err)
	}
	t.Logf("job board exposes %d job types", len(types))

	jobs, err := client.Jobs.List(ctx, JobFilter{Limit: 5})
	if err != nil {
		t.Fatalf("Jobs.List: %v", err)
	}
	for i, job := range jobs {
		t.Logf("Result %d: %s (%s)", i+1, job.Title, job.PublishedURL)
	}
}
