package adapters

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	ports "github.com/hearthware/souschef/souschef/assistant/ports"
)

const candidateColumns = "id, title, description, ingredients, instructions, author_name, likes_count"

// LibSQLRecipeSource implements RecipeSource over an embedded libsql
// database. Every query orders by likes_count descending; ties keep the
// database's natural order.
type LibSQLRecipeSource struct {
	db *sql.DB
}

// NewLibSQLRecipeSource creates a recipe source over the given database.
func NewLibSQLRecipeSource(db *sql.DB) *LibSQLRecipeSource {
	return &LibSQLRecipeSource{db: db}
}

// SearchTitle substring-matches query against recipe titles.
func (s *LibSQLRecipeSource) SearchTitle(ctx context.Context, query string, limit int) ([]ports.RecipeCandidate, error) {
	q := fmt.Sprintf(`SELECT %s FROM recipes WHERE lower(title) LIKE ? ORDER BY likes_count DESC LIMIT ?`, candidateColumns)
	return s.query(ctx, q, likePattern(query), limit)
}

// SearchIngredients substring-matches query against ingredient text.
func (s *LibSQLRecipeSource) SearchIngredients(ctx context.Context, query string, limit int) ([]ports.RecipeCandidate, error) {
	q := fmt.Sprintf(`SELECT %s FROM recipes WHERE lower(ingredients) LIKE ? ORDER BY likes_count DESC LIMIT ?`, candidateColumns)
	return s.query(ctx, q, likePattern(query), limit)
}

// SearchCategoryKeywords matches any keyword against title or description.
func (s *LibSQLRecipeSource) SearchCategoryKeywords(ctx context.Context, keywords []string, limit int) ([]ports.RecipeCandidate, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	conditions := make([]string, 0, len(keywords))
	args := make([]any, 0, 2*len(keywords)+1)
	for _, kw := range keywords {
		conditions = append(conditions, "(lower(title) LIKE ? OR lower(description) LIKE ?)")
		pattern := likePattern(kw)
		args = append(args, pattern, pattern)
	}
	args = append(args, limit)

	q := fmt.Sprintf(`SELECT %s FROM recipes WHERE %s ORDER BY likes_count DESC LIMIT ?`,
		candidateColumns, strings.Join(conditions, " OR "))
	return s.query(ctx, q, args...)
}

// SearchKeywordsAll requires every keyword to match title or ingredients.
func (s *LibSQLRecipeSource) SearchKeywordsAll(ctx context.Context, keywords []string, limit int) ([]ports.RecipeCandidate, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	conditions := make([]string, 0, len(keywords))
	args := make([]any, 0, 2*len(keywords)+1)
	for _, kw := range keywords {
		conditions = append(conditions, "(lower(title) LIKE ? OR lower(ingredients) LIKE ?)")
		pattern := likePattern(kw)
		args = append(args, pattern, pattern)
	}
	args = append(args, limit)

	q := fmt.Sprintf(`SELECT %s FROM recipes WHERE %s ORDER BY likes_count DESC LIMIT ?`,
		candidateColumns, strings.Join(conditions, " AND "))
	return s.query(ctx, q, args...)
}

// MostLiked returns the globally most-liked recipes.
func (s *LibSQLRecipeSource) MostLiked(ctx context.Context, limit int) ([]ports.RecipeCandidate, error) {
	q := fmt.Sprintf(`SELECT %s FROM recipes ORDER BY likes_count DESC LIMIT ?`, candidateColumns)
	return s.query(ctx, q, limit)
}

func (s *LibSQLRecipeSource) query(ctx context.Context, query string, args ...any) ([]ports.RecipeCandidate, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("recipe query: %w", err)
	}
	defer rows.Close()

	var candidates []ports.RecipeCandidate
	for rows.Next() {
		var c ports.RecipeCandidate
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Ingredients, &c.Instructions, &c.AuthorName, &c.LikesCount); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}
	return candidates, nil
}

func likePattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}

var _ ports.RecipeSource = (*LibSQLRecipeSource)(nil)
