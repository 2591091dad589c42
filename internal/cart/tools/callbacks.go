package tools

import (
	"context"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/tool"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"
	"github.com/rs/zerolog"
)

// newToolHandler builds a typed ToolCallbackHandler (not yet wrapped).
func newToolHandler(logger zerolog.Logger) *callbackHelper.ToolCallbackHandler {
	return &callbackHelper.ToolCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *tool.CallbackInput) context.Context {
			ev := logger.Debug().Str("tool", info.Name)
			if input != nil {
				ev = ev.Str("args", input.ArgumentsInJSON)
			}
			ev.Msg("tool start")
			return ctx
		},
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *tool.CallbackOutput) context.Context {
			ev := logger.Info().Str("tool", info.Name)
			if output != nil {
				ev = ev.Int("response_bytes", len(output.Response))
			}
			ev.Msg("tool end")
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logger.Error().Err(err).Str("tool", info.Name).Msg("tool execution failed")
			return ctx
		},
	}
}

// NewToolCallbacks constructs a callbacks.Handler that logs tool lifecycle events.
// Pass it to NewRegistry, or attach it via compose.WithCallbacks(...) when the
// tools run inside a graph.
func NewToolCallbacks(logger zerolog.Logger) einocb.Handler {
	return callbackHelper.NewHandlerHelper().
		Tool(newToolHandler(logger)).
		Handler()
}
