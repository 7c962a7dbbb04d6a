package entities

// Result values carried in the "result" field of listener responses.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// NotFoundMessage is the body text returned for unknown routes.
const NotFoundMessage = "Not found"

// ExecuteRequest is the body of POST /execute_blender_script.
// A missing code field decodes as the empty snippet.
type ExecuteRequest struct {
	// Code is the script source evaluated against the host session.
	Code string `json:"code" jsonschema:"description=Script source evaluated with the bpy control handle in scope"`
}

// ExecuteResponse is returned by POST /execute_blender_script.
// Output is set on success; Error and Traceback on failure.
type ExecuteResponse struct {
	Result    string `json:"result" jsonschema:"required,enum=success,enum=error"`
	Output    string `json:"output,omitempty" jsonschema:"description=Python-style rendering of the bindings the snippet produced"`
	Error     string `json:"error,omitempty"`
	Traceback string `json:"traceback,omitempty"`
}

// SceneInfoResponse is returned by GET /get_scene_info on success.
type SceneInfoResponse struct {
	// Objects lists scene object names in host iteration order.
	Objects []string `json:"objects" jsonschema:"required"`
}

// SceneErrorResponse is returned by GET /get_scene_info when the host
// cannot be queried. It never carries a traceback.
type SceneErrorResponse struct {
	Result string `json:"result" jsonschema:"required,enum=error"`
	Error  string `json:"error" jsonschema:"required"`
}

// NotFoundResponse is returned for any undefined path or method.
type NotFoundResponse struct {
	Error string `json:"error" jsonschema:"required"`
}

// NewExecuteSuccess builds a success body for the execute route.
func NewExecuteSuccess(output string) ExecuteResponse {
	return ExecuteResponse{Result: ResultSuccess, Output: output}
}

// NewExecuteFailure builds an error body for the execute route.
func NewExecuteFailure(message, traceback string) ExecuteResponse {
	return ExecuteResponse{Result: ResultError, Error: message, Traceback: traceback}
}
