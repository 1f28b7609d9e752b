package habits

import (
	"github.com/julianstephens/habit-tracker/internal/models"
	"github.com/julianstephens/habit-tracker/internal/store"
)

func storeWithoutSeed() []store.Option {
	return []store.Option{store.WithSeed(models.State{})}
}
