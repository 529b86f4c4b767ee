package mcpconst

// MCP_SESSION_ID_HEADER is already in canonical form.
const MCP_SESSION_ID_HEADER = "Mcp-Session-Id"

const AuthorizationHeader = "Authorization"

// JsonRpcMethod is a typed string for JSON-RPC method names.
type JsonRpcMethod string

// Defines the JSON-RPC methods this client speaks.
const (
	Initialize               JsonRpcMethod = "initialize"
	NotificationsInitialized JsonRpcMethod = "notifications/initialized"
	ToolsCall                JsonRpcMethod = "tools/call"
	ToolsList                JsonRpcMethod = "tools/list"
)

// ProtocolVersion is advertised in the initialize request.
const ProtocolVersion = "2024-11-05"

// ClientName and ClientVersion populate clientInfo during initialize.
const (
	ClientName    = "moltbot-hypertask"
	ClientVersion = "1.0.0"
)
