// Command scenebridge-mcp serves the scene bridge listener to MCP clients
// over stdio.
package main

import (
	"context"
	stdErrors "errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/scenebridge/scenebridge/domain/entities"
	"github.com/scenebridge/scenebridge/infrastructure/appclient"
)

// ServerName is the implementation name announced to MCP clients.
const ServerName = "scenebridge"

// ExecuteScriptParams is the input of the execute_script tool.
type ExecuteScriptParams struct {
	Code string `json:"code" jsonschema:"a Starlark script; the bpy control handle is in scope"`
}

// GetSceneInfoParams is the empty input of the get_scene_info tool.
type GetSceneInfoParams struct{}

// ExecuteScriptDescription tells the model what the script can reach.
const ExecuteScriptDescription = `Executes a script inside the running 3D host session.

The script is Starlark with the host control handle "bpy" in scope:
  bpy.context.scene.objects                 list of scene objects (each has .name)
  bpy.ops.mesh.primitive_cube_add()         also plane, uv_sphere, cylinder, cone, torus
  bpy.ops.mesh.primitive_add(kind)
  bpy.context.window_manager.clipboard      readable and assignable
  bpy.notify(message, level="INFO")

On success the result is the top-level bindings the script produced, rendered
like a Python dict, e.g. {'x': 2}. On failure the result is the error message
followed by the traceback.`

// ExecuteScriptTool forwards a script to the listener's execute route.
var ExecuteScriptTool = &mcp.Tool{
	Name:        "execute_script",
	Description: ExecuteScriptDescription,
}

// GetSceneInfoTool lists the scene through the listener's scene route.
var GetSceneInfoTool = &mcp.Tool{
	Name:        "get_scene_info",
	Description: "Lists the names of the objects in the host scene, one per line.",
}

// bridge forwards tool calls to the command listener.
type bridge struct {
	client *appclient.Client
}

func (b *bridge) executeScript(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	args ExecuteScriptParams,
) (*mcp.CallToolResult, any, error) {
	output, err := b.client.Execute(ctx, args.Code)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return textResult(output), nil, nil
}

func (b *bridge) getSceneInfo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ GetSceneInfoParams,
) (*mcp.CallToolResult, any, error) {
	objects, err := b.client.SceneObjects(ctx)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return textResult(strings.Join(objects, "\n")), nil, nil
}

// textResult wraps text as a single-content tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// errorResult reports err as a tool error; script failures carry the
// traceback after the message.
func errorResult(err error) *mcp.CallToolResult {
	text := err.Error()
	var reqErr *appclient.RequestError
	if stdErrors.As(err, &reqErr) && reqErr.Traceback != "" {
		text = reqErr.Message + "\n\n" + reqErr.Traceback
	}
	res := textResult(text)
	res.IsError = true
	return res
}

// NewMCPServer returns an MCP server whose tools call the listener
// through client.
func NewMCPServer(client *appclient.Client) *mcp.Server {
	b := &bridge{client: client}
	server := mcp.NewServer(&mcp.Implementation{Name: ServerName}, nil)
	mcp.AddTool(server, ExecuteScriptTool, b.executeScript)
	mcp.AddTool(server, GetSceneInfoTool, b.getSceneInfo)
	return server
}

func main() {
	addr := flag.String("addr", entities.DefaultListenAddress+":"+strconv.Itoa(entities.DefaultPort), "listener address")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	server := NewMCPServer(appclient.New(*addr))
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !stdErrors.Is(err, context.Canceled) {
		_, _ = fmt.Fprintf(os.Stderr, "scenebridge-mcp: %v\n", err)
		os.Exit(1)
	}
}
