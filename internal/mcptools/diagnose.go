package mcptools

import (
	"context"
	"encoding/json"
	"fmt"

	"baristabox-be/pkg/doctor"

	"github.com/mark3labs/mcp-go/mcp"
)

// DiagnoseTool handles diagnose. The tool keeps no memory: each reply
// carries the state the caller must send back with the next answer.
type DiagnoseTool struct {
	doctor   Diagnostician
	problems ProblemClassifier
}

func NewDiagnoseTool(doctor Diagnostician, problems ProblemClassifier) *DiagnoseTool {
	return &DiagnoseTool{doctor: doctor, problems: problems}
}

func (t *DiagnoseTool) Definition() mcp.Tool {
	return mcp.NewTool("diagnose",
		mcp.WithDescription(
			"Troubleshoot a brewed coffee one turn at a time. Start with the complaint and no state; "+
				"then pass the returned state back with each answer until the state comes back null.",
		),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("The complaint on the first call, the answer to the last question afterwards"),
		),
		mcp.WithString("problem",
			mcp.Description("Problem key such as 'bitter' or 'sour'; detected from the message when omitted"),
		),
		mcp.WithString("state",
			mcp.Description("The JSON state returned by the previous call"),
		),
	)
}

func (t *DiagnoseTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message := req.GetString("message", "")
	if message == "" {
		return mcp.NewToolResultError("'message' is required"), nil
	}

	if raw := req.GetString("state", ""); raw != "" {
		var state doctor.State
		if err := json.Unmarshal([]byte(raw), &state); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid state: %v", err)), nil
		}
		return jsonResult(t.doctor.Step(ctx, state, message))
	}

	problem := req.GetString("problem", "")
	if problem == "" {
		if t.problems == nil {
			return mcp.NewToolResultError("'problem' is required"), nil
		}
		label, err := t.problems.Classify(ctx, message)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("could not detect the problem: %v", err)), nil
		}
		problem = label
	}
	return jsonResult(t.doctor.Start(ctx, problem, message))
}
