package domain

import (
	"github.com/google/wire"

	domainsearch "github.com/personfinder/person-finder/internal/domain/search"
)

// DomainProvider provides all domain services
var DomainProvider = wire.NewSet(
	domainsearch.NewSearchService,
	domainsearch.NewOrchestrator,
)
