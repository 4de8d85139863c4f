package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/VoxDroid/cookme/internal/validation"
)

func createRecipe(t *testing.T, r *Repository, title string, ingredients ...string) Recipe {
	t.Helper()
	in := NewRecipe{Title: title, Author: "test"}
	for _, n := range ingredients {
		in.Ingredients = append(in.Ingredients, NewRecipeIngredient{Name: n, Quantity: 1, Unit: "kilogram"})
	}
	rc, err := r.CreateRecipe(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateRecipe(%s): %v", title, err)
	}
	return rc
}

func TestCreateRecipe_AndRetrieve(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	rc, err := r.CreateRecipe(ctx, NewRecipe{
		Title:       "Meat Lemon Apple",
		Author:      "test",
		Description: "tangy",
		Cuisine:     "European",
		Steps:       []string{"chop", "", "fry"},
		Ingredients: []NewRecipeIngredient{
			{Name: "meat", Category: "Meat", Quantity: 1, Unit: "kilogram"},
			{Name: "lemon", Category: "Fruits", Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}
	if rc.ID == 0 || rc.Slug != "meat-lemon-apple" {
		t.Fatalf("unexpected recipe: %+v", rc)
	}
	if len(rc.Steps) != 2 {
		t.Fatalf("expected blank steps dropped, got %v", rc.Steps)
	}

	got, err := r.GetRecipeBySlug(ctx, "meat-lemon-apple")
	if err != nil {
		t.Fatalf("GetRecipeBySlug: %v", err)
	}
	if len(got.Ingredients) != 2 {
		t.Fatalf("expected 2 ingredient lines, got %+v", got.Ingredients)
	}
	if got.Ingredients[0].Name != "Meat" || got.Ingredients[0].Unit != "kilogram" {
		t.Fatalf("unexpected first line: %+v", got.Ingredients[0])
	}
	if got.Ingredients[1].Name != "Lemon" || got.Ingredients[1].Unit != "" || got.Ingredients[1].Quantity != 2 {
		t.Fatalf("unexpected second line: %+v", got.Ingredients[1])
	}
}

func TestCreateRecipe_SlugDedup(t *testing.T) {
	r := newTestRepo(t)
	a := createRecipe(t, r, "Stew", "Meat")
	b := createRecipe(t, r, "stew!", "Meat")
	c := createRecipe(t, r, "STEW", "Meat")
	if a.Slug != "stew" || b.Slug != "stew-2" || c.Slug != "stew-3" {
		t.Fatalf("unexpected slugs %q %q %q", a.Slug, b.Slug, c.Slug)
	}
}

func TestCreateRecipe_RejectsDuplicateIngredient(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	_, err := r.CreateRecipe(ctx, NewRecipe{
		Title:  "Double Lemon",
		Author: "test",
		Ingredients: []NewRecipeIngredient{
			{Name: "lemon", Quantity: 1},
			{Name: "LEMON", Quantity: 2},
		},
	})
	if !errors.Is(err, ErrDuplicateIngredient) {
		t.Fatalf("expected ErrDuplicateIngredient, got %v", err)
	}
	// the transaction must have been rolled back
	recipes, err := r.ListRecipes(ctx)
	if err != nil {
		t.Fatalf("ListRecipes: %v", err)
	}
	if len(recipes) != 0 {
		t.Fatalf("expected no recipes after failed create, got %d", len(recipes))
	}
	if all, _ := r.ListIngredients(ctx); len(all) != 0 {
		t.Fatalf("expected ingredient creation rolled back, got %+v", all)
	}
}

func TestCreateRecipe_Validation(t *testing.T) {
	r := newTestRepo(t)
	_, err := r.CreateRecipe(context.Background(), NewRecipe{Title: "  ", Author: "test"})
	var verr *validation.RequestValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err = r.CreateRecipe(context.Background(), NewRecipe{
		Title: "Negative", Author: "test",
		Ingredients: []NewRecipeIngredient{{Name: "Meat", Quantity: -1}},
	})
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error for negative quantity, got %v", err)
	}
}

func TestCreateRecipe_NoIngredients(t *testing.T) {
	r := newTestRepo(t)
	rc := createRecipe(t, r, "Water")
	got, err := r.GetRecipeBySlug(context.Background(), rc.Slug)
	if err != nil {
		t.Fatalf("GetRecipeBySlug: %v", err)
	}
	if len(got.Ingredients) != 0 {
		t.Fatalf("expected no ingredients, got %+v", got.Ingredients)
	}
}

func TestListRecipes_CreationOrder(t *testing.T) {
	r := newTestRepo(t)
	createRecipe(t, r, "Zebra Cake", "Flour")
	createRecipe(t, r, "Apple Pie", "Apple")
	createRecipe(t, r, "Meat Loaf", "Meat")

	recipes, err := r.ListRecipes(context.Background())
	if err != nil {
		t.Fatalf("ListRecipes: %v", err)
	}
	want := []string{"zebra-cake", "apple-pie", "meat-loaf"}
	if len(recipes) != len(want) {
		t.Fatalf("expected %d recipes, got %d", len(want), len(recipes))
	}
	for i, w := range want {
		if recipes[i].Slug != w {
			t.Fatalf("position %d: expected %s got %s", i, w, recipes[i].Slug)
		}
		if recipes[i].Ingredients != nil {
			t.Fatalf("ListRecipes should not load ingredient lines")
		}
	}

	if err := r.AttachIngredients(context.Background(), recipes); err != nil {
		t.Fatalf("AttachIngredients: %v", err)
	}
	if recipes[1].Ingredients[0].Name != "Apple" {
		t.Fatalf("unexpected attached ingredients: %+v", recipes[1].Ingredients)
	}
}

func TestDeleteRecipe(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	rc := createRecipe(t, r, "Lemon Tart", "Lemon")
	f, err := r.GetOrCreateFridge(ctx, "test")
	if err != nil {
		t.Fatalf("GetOrCreateFridge: %v", err)
	}
	if err := r.AddRecipeToFridge(ctx, f.ID, rc.Slug); err != nil {
		t.Fatalf("AddRecipeToFridge: %v", err)
	}

	if err := r.DeleteRecipe(ctx, rc.Slug); err != nil {
		t.Fatalf("DeleteRecipe: %v", err)
	}
	if _, err := r.GetRecipeBySlug(ctx, rc.Slug); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	linked, err := r.ListFridgeRecipes(ctx, f.ID)
	if err != nil {
		t.Fatalf("ListFridgeRecipes: %v", err)
	}
	if len(linked) != 0 {
		t.Fatalf("expected fridge link removed, got %+v", linked)
	}
	if err := r.DeleteRecipe(ctx, rc.Slug); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestCreateRecipe_ConcurrentSameTitle(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.CreateRecipe(ctx, NewRecipe{
				Title:       "Soup",
				Author:      "test",
				Ingredients: []NewRecipeIngredient{{Name: "lemon", Quantity: 1}},
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent CreateRecipe: %v", err)
		}
	}

	recipes, err := r.ListRecipes(ctx)
	if err != nil {
		t.Fatalf("ListRecipes: %v", err)
	}
	if len(recipes) != n {
		t.Fatalf("expected %d recipes, got %d", n, len(recipes))
	}
	seen := map[string]bool{}
	for _, rc := range recipes {
		if seen[rc.Slug] {
			t.Fatalf("duplicate slug %s", rc.Slug)
		}
		seen[rc.Slug] = true
	}
	if !seen["soup"] || !seen[fmt.Sprintf("soup-%d", n)] {
		t.Fatalf("expected slugs soup..soup-%d, got %v", n, seen)
	}
}

func TestFindRecipe(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	createRecipe(t, r, "Stew", "meat")
	if _, err := r.CreateRecipe(ctx, NewRecipe{Title: "Stew", Author: "alice"}); err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}

	rc, err := r.FindRecipe(ctx, " Stew ", "alice")
	if err != nil {
		t.Fatalf("FindRecipe: %v", err)
	}
	if rc.Slug != "stew-2" || rc.Author != "alice" {
		t.Fatalf("unexpected recipe %+v", rc)
	}
	rc, err = r.FindRecipe(ctx, "Stew", "test")
	if err != nil || rc.Slug != "stew" || len(rc.Ingredients) != 1 {
		t.Fatalf("FindRecipe(test) = %+v, %v", rc, err)
	}
	if _, err := r.FindRecipe(ctx, "Stew", "bob"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListArg(t *testing.T) {
	got, err := ListArg([]string{"Lemon", `Say "Cheese"`})
	if err != nil || got != `["Lemon","Say \"Cheese\""]` {
		t.Fatalf("ListArg(strings) = %s, %v", got, err)
	}
	if got, _ := ListArg([]int64(nil)); got != "[]" {
		t.Fatalf("ListArg(nil) = %s", got)
	}
}
