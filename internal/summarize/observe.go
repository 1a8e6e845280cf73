package summarize

import (
	"context"
	"fmt"

	"github.com/dtnitsch/readmoo-summary/internal/common"
	"github.com/dtnitsch/readmoo-summary/models"
	"github.com/urfave/cli/v2"
)

// ObserveAction reports a completed reader request to a running worker.
func ObserveAction(c *cli.Context) error {
	client, err := common.NewClient(c.String("server"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	obs := models.Observation{
		URL:          common.SanitizeURL(c.String("url")),
		StatusCode:   c.Int("status"),
		ResourceType: c.String("resource-type"),
		DocumentID:   c.String("document-id"),
	}
	recorded, err := client.Observe(context.Background(), obs)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if !recorded {
		return cli.Exit(fmt.Sprintf("ignored: %s is not a qualifying reader request", obs.URL), 1)
	}
	fmt.Printf("Recorded %s\n", obs.URL)
	return nil
}
