package interfaces

import (
	"github.com/google/wire"

	"github.com/personfinder/person-finder/internal/interfaces/httpserver"
	"github.com/personfinder/person-finder/internal/interfaces/httpserver/routes"
)

// InterfacesProvider provides all interface layer dependencies
var InterfacesProvider = wire.NewSet(
	routes.RoutesProvider,
	httpserver.NewHTTPServer,
)
