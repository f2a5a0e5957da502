package setup

import (
	"context"

	gormAdapter "github.com/fabresse/roster/internal/adapter/gorm"
	"github.com/fabresse/roster/internal/config"
	"github.com/fabresse/roster/internal/core/port"
	"github.com/pkg/errors"
)

var getMemberStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (port.MemberStore, error) {
	db, err := getGormDatabaseFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return gormAdapter.NewStore(db), nil
})
