// Package mcpapi provides a stateless MCP streamable-HTTP adapter over the
// schedule read surface.
package mcpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ZeeshanAK/my-availability-app/internal/adapters/server/common"
	"github.com/ZeeshanAK/my-availability-app/internal/app"
	"github.com/ZeeshanAK/my-availability-app/internal/domain"
)

// Config captures MCP transport configuration.
type Config struct {
	ServerName    string
	ServerVersion string
	EndpointPath  string
}

// Handler wraps one stateless MCP streamable HTTP handler.
type Handler struct {
	httpHandler http.Handler
}

// NewHandler builds the MCP adapter with the day, month, and activity tools.
func NewHandler(cfg Config, svc common.ScheduleService) (*Handler, error) {
	if svc == nil {
		return nil, fmt.Errorf("schedule service is required")
	}
	cfg = normalizeConfig(cfg)

	mcpSrv := mcpserver.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		mcpserver.WithToolCapabilities(false),
	)
	registerDayScheduleTool(mcpSrv, svc)
	registerMonthIndicatorsTool(mcpSrv, svc)
	registerListActivitiesTool(mcpSrv, svc)

	streamable := mcpserver.NewStreamableHTTPServer(
		mcpSrv,
		mcpserver.WithEndpointPath(cfg.EndpointPath),
		mcpserver.WithStateLess(true),
	)
	return &Handler{httpHandler: streamable}, nil
}

// ServeHTTP handles one MCP streamable HTTP request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.httpHandler == nil {
		http.Error(w, "mcp handler unavailable", http.StatusServiceUnavailable)
		return
	}
	h.httpHandler.ServeHTTP(w, r)
}

// normalizeConfig applies deterministic defaults to MCP adapter config.
func normalizeConfig(cfg Config) Config {
	cfg.ServerName = strings.TrimSpace(cfg.ServerName)
	if cfg.ServerName == "" {
		cfg.ServerName = "avail"
	}
	cfg.ServerVersion = strings.TrimSpace(cfg.ServerVersion)
	if cfg.ServerVersion == "" {
		cfg.ServerVersion = "dev"
	}
	cfg.EndpointPath = strings.TrimSpace(cfg.EndpointPath)
	if cfg.EndpointPath == "" {
		cfg.EndpointPath = "/mcp"
	}
	if !strings.HasPrefix(cfg.EndpointPath, "/") {
		cfg.EndpointPath = "/" + cfg.EndpointPath
	}
	cfg.EndpointPath = "/" + strings.Trim(cfg.EndpointPath, "/")
	return cfg
}

// registerDayScheduleTool registers the `avail.day_schedule` tool.
func registerDayScheduleTool(srv *mcpserver.MCPServer, svc common.ScheduleService) {
	srv.AddTool(
		mcp.NewTool(
			"avail.day_schedule",
			mcp.WithDescription("Resolve one owner's schedule for a calendar date, clocks rendered in the owner's zone or an override."),
			mcp.WithString("owner_id", mcp.Required(), mcp.Description("Owner identifier")),
			mcp.WithString("date", mcp.Required(), mcp.Description("Calendar date, YYYY-MM-DD")),
			mcp.WithString("tz", mcp.Description("IANA zone the clocks are rendered in (defaults to the owner's zone)")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			ownerID, err := req.RequireString("owner_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			rawDate, err := req.RequireString("date")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			day, err := domain.ParseDate(rawDate)
			if err != nil {
				return toolResultFromError(err), nil
			}
			owner, err := svc.Owner(ctx, ownerID)
			if err != nil {
				return toolResultFromError(fmt.Errorf("resolve owner %q: %w", ownerID, err)), nil
			}
			loc, zoneName, err := common.ResolveZone(owner, req.GetString("tz", ""))
			if err != nil {
				return toolResultFromError(err), nil
			}
			schedule, err := svc.DaySchedule(ctx, ownerID, day)
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(common.NewDayView(owner, schedule, loc, zoneName))
			if err != nil {
				return nil, fmt.Errorf("encode day_schedule result: %w", err)
			}
			return result, nil
		},
	)
}

// registerMonthIndicatorsTool registers the `avail.month_indicators` tool.
func registerMonthIndicatorsTool(srv *mcpserver.MCPServer, svc common.ScheduleService) {
	srv.AddTool(
		mcp.NewTool(
			"avail.month_indicators",
			mcp.WithDescription("Summarize which dates of a month carry occurrences, one indicator color per date."),
			mcp.WithString("owner_id", mcp.Required(), mcp.Description("Owner identifier")),
			mcp.WithString("month", mcp.Required(), mcp.Description("Calendar month, YYYY-MM")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			ownerID, err := req.RequireString("owner_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			rawMonth, err := req.RequireString("month")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			month, err := domain.ParseYearMonth(rawMonth)
			if err != nil {
				return toolResultFromError(err), nil
			}
			owner, err := svc.Owner(ctx, ownerID)
			if err != nil {
				return toolResultFromError(fmt.Errorf("resolve owner %q: %w", ownerID, err)), nil
			}
			indicators, err := svc.MonthView(ctx, ownerID, month)
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(common.NewMonthView(owner, indicators))
			if err != nil {
				return nil, fmt.Errorf("encode month_indicators result: %w", err)
			}
			return result, nil
		},
	)
}

// registerListActivitiesTool registers the `avail.list_activities` tool.
func registerListActivitiesTool(srv *mcpserver.MCPServer, svc common.ScheduleService) {
	srv.AddTool(
		mcp.NewTool(
			"avail.list_activities",
			mcp.WithDescription("List the owner's activities with their colors."),
			mcp.WithString("owner_id", mcp.Required(), mcp.Description("Owner identifier")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			ownerID, err := req.RequireString("owner_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if _, err := svc.Owner(ctx, ownerID); err != nil {
				return toolResultFromError(fmt.Errorf("resolve owner %q: %w", ownerID, err)), nil
			}
			activities, err := svc.ListActivities(ctx, ownerID)
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(map[string]any{
				"activities": common.NewActivityViews(activities),
			})
			if err != nil {
				return nil, fmt.Errorf("encode list_activities result: %w", err)
			}
			return result, nil
		},
	)
}

// toolResultFromError maps service errors into MCP-visible tool errors.
func toolResultFromError(err error) *mcp.CallToolResult {
	switch {
	case err == nil:
		return mcp.NewToolResultError("unknown error")
	case errors.Is(err, app.ErrNotFound):
		return mcp.NewToolResultError("not_found: " + err.Error())
	case errors.Is(err, domain.ErrInvalidDate), errors.Is(err, domain.ErrInvalidTimezone):
		return mcp.NewToolResultError("invalid_request: " + err.Error())
	default:
		return mcp.NewToolResultError("internal_error: " + err.Error())
	}
}
