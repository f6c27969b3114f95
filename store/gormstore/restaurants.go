package gormstore

import (
	"context"
	"fmt"
	"strings"

	"food-ordering-api/models"
	"food-ordering-api/search"

	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

// keySep delimits cuisines inside cuisines_key. It is stripped from stored
// values, so a pattern without it can only match inside one element.
const keySep = "\x1f"

// restaurantRow stores case-folded copies of the searchable fields next to
// the restaurant. Folding happens in Go so matching does not depend on the
// database's notion of case.
type restaurantRow struct {
	models.Restaurant `gorm:"embedded"`
	CityKey           string `gorm:"column:city_key;index"`
	NameKey           string `gorm:"column:name_key"`
	CuisinesKey       string `gorm:"column:cuisines_key"`
}

func (restaurantRow) TableName() string { return "restaurants" }

func newRestaurantRow(r *models.Restaurant) *restaurantRow {
	row := &restaurantRow{
		Restaurant: *r,
		CityKey:    foldKey(r.City),
		NameKey:    foldKey(r.RestaurantName),
	}
	elems := make([]string, len(r.Cuisines))
	for i, c := range r.Cuisines {
		elems[i] = foldKey(c)
	}
	row.CuisinesKey = keySep + strings.Join(elems, keySep) + keySep
	return row
}

// foldKey applies full Unicode case folding. cases.Caser keeps state, so a
// fresh one is used per call.
func foldKey(s string) string {
	return cases.Fold().String(strings.ReplaceAll(s, keySep, ""))
}

var filterColumns = map[search.Field]string{
	search.FieldCity:           "city_key",
	search.FieldRestaurantName: "name_key",
	search.FieldCuisines:       "cuisines_key",
}

var sortColumns = map[search.SortField]string{
	search.SortLastUpdated:           "last_updated",
	search.SortDeliveryPrice:         "delivery_price",
	search.SortEstimatedDeliveryTime: "estimated_delivery_time",
}

func (s *Store) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	row, err := first[restaurantRow](ctx, s.db, "id = ?", id)
	if err != nil {
		return nil, err
	}
	return &row.Restaurant, nil
}

func (s *Store) FindRestaurantByUser(ctx context.Context, userID string) (*models.Restaurant, error) {
	row, err := first[restaurantRow](ctx, s.db, "user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	return &row.Restaurant, nil
}

func (s *Store) CreateRestaurant(ctx context.Context, restaurant *models.Restaurant) error {
	row := newRestaurantRow(restaurant)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	*restaurant = row.Restaurant
	return nil
}

func (s *Store) UpdateRestaurant(ctx context.Context, restaurant *models.Restaurant) error {
	return save(ctx, s.db, newRestaurantRow(restaurant), restaurant.ID)
}

func (s *Store) CountRestaurants(ctx context.Context, filter search.Filter) (int64, error) {
	tx, err := applyFilter(s.db.WithContext(ctx).Model(&restaurantRow{}), filter)
	if err != nil {
		return 0, err
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) FindRestaurants(ctx context.Context, query search.Query) ([]models.Restaurant, error) {
	tx, err := applyFilter(s.db.WithContext(ctx).Model(&restaurantRow{}), query.Filter)
	if err != nil {
		return nil, err
	}
	col, ok := sortColumns[query.Sort]
	if !ok {
		col = sortColumns[search.SortLastUpdated]
	}
	var rows []restaurantRow
	err = tx.Order(col + " asc").Order("id asc").
		Offset(query.Skip).
		Limit(query.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	restaurants := make([]models.Restaurant, len(rows))
	for i := range rows {
		restaurants[i] = rows[i].Restaurant
	}
	return restaurants, nil
}

// reindexRestaurants fills the search keys of rows written before the key
// columns existed.
func (s *Store) reindexRestaurants(ctx context.Context) error {
	var stale []restaurantRow
	err := s.db.WithContext(ctx).
		Where("cuisines_key IS NULL OR cuisines_key = ''").
		Find(&stale).Error
	if err != nil {
		return err
	}
	for i := range stale {
		r := stale[i].Restaurant
		if err := save(ctx, s.db, newRestaurantRow(&r), r.ID); err != nil {
			return err
		}
	}
	return nil
}

// applyFilter turns each clause into a parenthesised OR of LIKE tests over
// the folded key columns.
func applyFilter(tx *gorm.DB, filter search.Filter) (*gorm.DB, error) {
	for _, clause := range filter.Clauses {
		conds := make([]string, 0, len(clause.AnyOf))
		args := make([]any, 0, len(clause.AnyOf))
		for _, p := range clause.AnyOf {
			col, ok := filterColumns[p.Field]
			if !ok {
				return nil, fmt.Errorf("gormstore: unsupported filter field %q", p.Field)
			}
			switch p.Operator {
			case search.Contains, search.ElementContains:
				if strings.Contains(p.Value, keySep) {
					// stored keys never contain the separator inside a value
					conds = append(conds, "1 = 0")
					continue
				}
				conds = append(conds, col+" LIKE ? ESCAPE '\\'")
				args = append(args, "%"+escapeLike(cases.Fold().String(p.Value))+"%")
			default:
				return nil, fmt.Errorf("gormstore: unsupported operator %d", p.Operator)
			}
		}
		if len(conds) > 0 {
			tx = tx.Where("("+strings.Join(conds, " OR ")+")", args...)
		}
	}
	return tx, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
