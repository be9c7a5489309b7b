package routes

import (
	"github.com/google/wire"

	"github.com/personfinder/person-finder/internal/interfaces/httpserver/routes/mcp"
	v1 "github.com/personfinder/person-finder/internal/interfaces/httpserver/routes/v1"
)

// RoutesProvider provides all route dependencies
var RoutesProvider = wire.NewSet(
	v1.NewSearchRoute,
	mcp.NewSearchMCP,
	mcp.NewMCPRoute,
)
