package mcp

import (
	"context"

	"github.com/bytedance/sonic"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerStateResource(srv, svc)
	registerInsightsResource(srv, svc)
	registerGoalTemplate(srv, svc)
}

func registerStateResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"lyfocus://state",
		"State",
		mcp.WithResourceDescription("Every todo, habit, check-in, journal entry and goal with XP and streaks."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		view, err := svc.State(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, view)
	})
}

func registerInsightsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"lyfocus://insights",
		"Insights",
		mcp.WithResourceDescription("Weekly review, 28 day heatmap, trends and written insights."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		report, err := svc.Insights(ctx, 0)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, report)
	})
}

func registerGoalTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"lyfocus://goals/{id}",
		"Goal Details",
		mcp.WithTemplateDescription("One goal with its progress percentage."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		payload, err := svc.GoalDetail(ctx, templateArg(request.Params.Arguments["id"]))
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

// templateArg reads a URI template variable, which may arrive as a string
// or a one-element list.
func templateArg(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := sonic.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
