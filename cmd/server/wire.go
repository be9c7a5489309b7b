//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/personfinder/person-finder/internal/domain"
	"github.com/personfinder/person-finder/internal/infrastructure"
	"github.com/personfinder/person-finder/internal/interfaces"
)

func CreateApplication(ctx context.Context) (*Application, func(), error) {
	wire.Build(
		domain.DomainProvider,
		infrastructure.InfrastructureProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil, nil
}
