package testing

type DatabaseHelper struct {
	tc *TestCase
}

func NewDatabaseHelper(tc *TestCase) *DatabaseHelper {
	return &DatabaseHelper{tc: tc}
}

// Count returns the number of rows in table matching conditions.
func (d *DatabaseHelper) Count(table string, conditions ...map[string]any) int64 {
	query := d.tc.GetDB().Table(table)
	for _, cond := range conditions {
		for key, value := range cond {
			query = query.Where(key+" = ?", value)
		}
	}

	var count int64
	d.tc.Require().NoError(query.Count(&count).Error, "failed to count %s", table)
	return count
}

func (d *DatabaseHelper) AssertDatabaseHas(table string, conditions map[string]any) {
	count := d.Count(table, conditions)
	d.tc.True(count > 0, "Expected to find record in table %s with conditions %v", table, conditions)
}

func (d *DatabaseHelper) AssertDatabaseMissing(table string, conditions map[string]any) {
	count := d.Count(table, conditions)
	d.tc.True(count == 0, "Expected NOT to find record in table %s with conditions %v", table, conditions)
}

func (d *DatabaseHelper) AssertDatabaseCount(table string, expectedCount int) {
	count := d.Count(table)
	d.tc.Equal(int64(expectedCount), count, "Expected %d records in table %s, got %d", expectedCount, table, count)
}

func (d *DatabaseHelper) Create(model any) error {
	return d.tc.GetDB().Create(model).Error
}

func (d *DatabaseHelper) Find(dest any, conditions ...any) error {
	return d.tc.GetDB().First(dest, conditions...).Error
}

func (d *DatabaseHelper) Delete(model any) error {
	return d.tc.GetDB().Delete(model).Error
}
