package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for Lectern resources.
const uriScheme = "lectern://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "courses",
		Name:        "courses",
		Description: "Titles of all ingested courses",
		MIMEType:    "application/json",
	}, s.handleCoursesResource)
}

// handleCoursesResource returns the ingested course titles.
func (s *Server) handleCoursesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	titles := []string{}
	if s.ports.Ingest != nil {
		analytics, err := s.ports.Ingest.Analytics(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing courses: %w", err)
		}
		titles = analytics.CourseTitles
	}

	data, err := json.MarshalIndent(titles, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling courses: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
