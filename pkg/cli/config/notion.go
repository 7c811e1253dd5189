package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/isorisk/pkg/service/notion"
	"github.com/urfave/cli/v3"
)

type Notion struct {
	token      string
	databaseID string
}

func (x *Notion) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "notion-api-token",
			Usage:       "Notion API token for exporting assessments to a risk register",
			Category:    "Notion",
			Destination: &x.token,
			Sources:     cli.EnvVars("ISORISK_NOTION_API_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "notion-database-id",
			Usage:       "Notion database ID of the risk register",
			Category:    "Notion",
			Destination: &x.databaseID,
			Sources:     cli.EnvVars("ISORISK_NOTION_DATABASE_ID"),
		},
	}
}

func (x Notion) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("api-token.len", len(x.token)),
		slog.String("database-id", x.databaseID),
	)
}

// Configure returns an exporter, or nil when Notion is not configured
func (x *Notion) Configure() (notion.Exporter, error) {
	if x.token == "" && x.databaseID == "" {
		return nil, nil
	}
	if x.token == "" || x.databaseID == "" {
		return nil, goerr.New("both --notion-api-token and --notion-database-id are required for the risk register export")
	}

	exporter, err := notion.New(x.token, x.databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create notion exporter")
	}
	return exporter, nil
}
