package populate

import (
	"context"
	"embed"
)

//go:embed demo
var demoFS embed.FS

// Demo loads the bundled sample units, ingredients and recipes.
func (l *Loader) Demo(ctx context.Context) (Report, error) {
	var rep Report
	if err := l.File(ctx, demoFS, "demo/units.txt", l.Units, &rep); err != nil {
		return rep, err
	}
	if err := l.File(ctx, demoFS, "demo/ingredients.txt", l.Ingredients, &rep); err != nil {
		return rep, err
	}
	if err := l.Recipes(ctx, demoFS, "demo/recipes", &rep); err != nil {
		return rep, err
	}
	return rep, nil
}
