package models

// ProductChanges accumulates column assignments for a partial update.
// Columns keep the order in which they were set.
type ProductChanges struct {
	columns []string
	values  map[string]interface{}
}

// Set records value for column, replacing any earlier assignment.
func (c *ProductChanges) Set(column string, value interface{}) {
	if c.values == nil {
		c.values = make(map[string]interface{})
	}
	if _, ok := c.values[column]; !ok {
		c.columns = append(c.columns, column)
	}
	c.values[column] = value
}

// Empty reports whether no column has been set.
func (c ProductChanges) Empty() bool {
	return len(c.columns) == 0
}

// Columns returns the assigned column names in insertion order.
func (c ProductChanges) Columns() []string {
	return append([]string(nil), c.columns...)
}

// Map returns a copy of the assignments keyed by column name.
func (c ProductChanges) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(c.values))
	for k, v := range c.values {
		m[k] = v
	}
	return m
}
