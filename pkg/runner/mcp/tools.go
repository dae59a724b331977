package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListWeekTool(srv, svc)
	registerCreateTaskTool(srv, svc)
	registerUpdateTaskTool(srv, svc)
	registerCompleteOccurrenceTool(srv, svc)
	registerSkipOccurrenceTool(srv, svc)
}

func registerListWeekTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_week",
		mcp.WithDescription("Lay out the week containing a date: every occurrence with its column and horizontal geometry."),
		mcp.WithString("date",
			mcp.Description("Any day of the week to show, YYYY-MM-DD. Defaults to today."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		week, err := svc.ListWeek(ctx, request.GetString("date", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(week)
	})
}

func registerCreateTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_task",
		mcp.WithDescription("Create a time-blocked task."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Task name."),
		),
		mcp.WithString("date",
			mcp.Description("Day of the task, YYYY-MM-DD. Defaults to today."),
		),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Start time, HH:MM."),
		),
		mcp.WithString("end",
			mcp.Description("End time, HH:MM. Either end or duration is required."),
		),
		mcp.WithString("duration",
			mcp.Description("Length such as 45m or 1h30m, used when end is omitted."),
		),
		mcp.WithString("description",
			mcp.Description("Optional notes."),
		),
		mcp.WithBoolean("recurring",
			mcp.Description("Repeat weekly on the same weekday."),
		),
		mcp.WithBoolean("high_priority",
			mcp.Description("Flag the task as high priority."),
		),
		mcp.WithString("color",
			mcp.Description("Hex color such as #5f87af."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Name         string `json:"name"`
			Date         string `json:"date"`
			Start        string `json:"start"`
			End          string `json:"end"`
			Duration     string `json:"duration"`
			Description  string `json:"description"`
			Recurring    bool   `json:"recurring"`
			HighPriority bool   `json:"high_priority"`
			Color        string `json:"color"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.CreateTask(ctx, CreateTaskOptions{
			Name:         args.Name,
			Description:  args.Description,
			Date:         args.Date,
			Start:        args.Start,
			End:          args.End,
			Duration:     args.Duration,
			Recurring:    args.Recurring,
			HighPriority: args.HighPriority,
			Color:        args.Color,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_task",
		mcp.WithDescription("Move or resize a task. Moving a recurring task moves the whole series."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
		mcp.WithString("date",
			mcp.Description("New day, YYYY-MM-DD."),
		),
		mcp.WithString("start",
			mcp.Description("New start time, HH:MM."),
		),
		mcp.WithString("end",
			mcp.Description("New end time, HH:MM."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.UpdateTask(ctx, UpdateTaskOptions{
			ID:    id,
			Date:  request.GetString("date", ""),
			Start: request.GetString("start", ""),
			End:   request.GetString("end", ""),
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerCompleteOccurrenceTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"complete_occurrence",
		mcp.WithDescription("Mark one occurrence of a task as completed, or reopen it."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
		mcp.WithString("date",
			mcp.Description("Day of the occurrence, YYYY-MM-DD. Defaults to today."),
		),
		mcp.WithBoolean("completed",
			mcp.Description("false reopens the occurrence. Defaults to true."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		done := request.GetBool("completed", true)
		key, err := svc.CompleteOccurrence(ctx, id, request.GetString("date", ""), done)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"key":       key,
			"completed": done,
		})
	})
}

func registerSkipOccurrenceTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"skip_occurrence",
		mcp.WithDescription("Skip one occurrence of a recurring task. Skipping a one-off task deletes it."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Day of the occurrence, YYYY-MM-DD."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		date, err := request.RequireString("date")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.SkipOccurrence(ctx, id, date)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"task":    dto,
			"deleted": dto == nil,
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
