package mcp

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/personfinder/person-finder/internal/interfaces/httpserver/responses"
	"github.com/personfinder/person-finder/utils/platformerrors"
)

var allowedMCPMethods = map[string]bool{
	// Initialization / handshake
	"initialize":                true,
	"notifications/initialized": true,
	"ping":                      true,

	// Tools
	"tools/list": true,
	"tools/call": true,
}

type MCPRoute struct {
	searchMCP   *SearchMCP
	mcpServer   *mcp.Server
	httpHandler http.Handler
}

func NewMCPRoute(searchMCP *SearchMCP) *MCPRoute {
	impl := &mcp.Implementation{
		Name:    "person-finder",
		Version: "1.0.0",
	}
	server := mcp.NewServer(impl, nil)
	searchMCP.RegisterTools(server)

	return &MCPRoute{
		searchMCP: searchMCP,
		mcpServer: server,
		httpHandler: mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
			return server
		}, &mcp.StreamableHTTPOptions{Stateless: true}),
	}
}

func (route *MCPRoute) RegisterRouter(router *gin.RouterGroup) {
	router.POST("/mcp",
		MCPMethodGuard(allowedMCPMethods),
		route.serveMCP,
	)
}

// serveMCP streams Model Context Protocol responses using the underlying MCP server.
func (route *MCPRoute) serveMCP(reqCtx *gin.Context) {
	// Force acceptable content types for go-sdk streamable handler even if client omits Accept.
	reqCtx.Request.Header.Set("Accept", "application/json, text/event-stream")
	route.httpHandler.ServeHTTP(reqCtx.Writer, reqCtx.Request)
}

func MCPMethodGuard(allowedMethods map[string]bool) gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		bodyBytes, err := io.ReadAll(reqCtx.Request.Body)
		if err != nil {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeInternal, "failed to read MCP request body", "c41e8f0a-6b2d-4c7e-9f13-8a5d0b2e6c74")
			return
		}
		_ = reqCtx.Request.Body.Close()

		if len(bodyBytes) == 0 {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "empty MCP request body", "5d9a3b7e-0f4c-4e2a-8b61-7c3e9d1f2a85")
			return
		}

		reqCtx.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var payload struct {
			Method string `json:"method"`
		}

		if err := json.Unmarshal(bodyBytes, &payload); err != nil {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid MCP request payload", "e2b7c9d1-3a5f-4b8e-a0c6-9f1d4e7b2c38")
			return
		}

		if payload.Method == "" {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "missing method field in MCP request", "7a1f5c3e-9d2b-4e6a-b8c0-2e4f6a8d0b19")
			return
		}

		if !allowedMethods[payload.Method] {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "unsupported MCP method: "+payload.Method, "0b8e2d4f-6c1a-4f3e-9d7b-5a2c8e0f4b63")
			return
		}

		reqCtx.Next()
	}
}
