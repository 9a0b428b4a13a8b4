package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Schema provides database schema operations
type Schema struct {
	db     *gorm.DB
	dbType string
}

// NewSchema creates a Schema on the global connection.
func NewSchema() *Schema {
	return NewSchemaFor(Connect)
}

// NewSchemaFor creates a Schema on db, using its dialect for DDL.
func NewSchemaFor(db *gorm.DB) *Schema {
	return &Schema{
		db:     db,
		dbType: GetDriver(db),
	}
}

func (s *Schema) exec(statements []string) error {
	for _, stmt := range statements {
		if err := s.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("%w (sql: %s)", err, stmt)
		}
	}
	return nil
}

// Create creates a new table
func (s *Schema) Create(tableName string, callback func(table *Blueprint)) error {
	blueprint := NewBlueprint(tableName, s.dbType)
	callback(blueprint)

	return s.exec(blueprint.Statements())
}

// Table modifies an existing table
func (s *Schema) Table(tableName string, callback func(table *Blueprint)) error {
	blueprint := NewBlueprint(tableName, s.dbType)
	blueprint.SetMode("alter")
	callback(blueprint)

	return s.exec(blueprint.Statements())
}

// Drop drops a table
func (s *Schema) Drop(tableName string) error {
	return s.db.Exec(fmt.Sprintf("DROP TABLE %s;", tableName)).Error
}

// DropIfExists drops a table if it exists
func (s *Schema) DropIfExists(tableName string) error {
	return s.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s;", tableName)).Error
}

// HasTable checks if table exists
func (s *Schema) HasTable(tableName string) bool {
	return s.db.Migrator().HasTable(tableName)
}

// HasColumn checks if column exists
func (s *Schema) HasColumn(tableName, columnName string) bool {
	return s.db.Migrator().HasColumn(tableName, columnName)
}

// Blueprint represents a table blueprint for building schema
type Blueprint struct {
	tableName string
	dbType    string
	mode      string // "create" or "alter"
	columns   []Column
	indexes   []Index
	foreign   []ForeignKey
	primary   []string
}

// NewBlueprint creates a new Blueprint
func NewBlueprint(tableName, dbType string) *Blueprint {
	return &Blueprint{
		tableName: tableName,
		dbType:    dbType,
		mode:      "create",
	}
}

// SetMode sets the blueprint mode (create/alter)
func (b *Blueprint) SetMode(mode string) {
	b.mode = mode
}

// Column represents a database column
type Column struct {
	Name       string
	Type       string
	Length     int
	Precision  int
	Scale      int
	Nullable   bool
	Default    any
	Unique     bool
	Primary    bool
	Auto       bool
	Unsigned   bool
	Comment    string
	EnumValues []string
}

// Index represents a database index
type Index struct {
	Name    string
	Columns []string
	Type    string // "index" or "unique"
}

// ForeignKey represents a foreign key constraint
type ForeignKey struct {
	Column     string
	References string
	On         string
	OnDelete   string
	OnUpdate   string
}

func (b *Blueprint) add(col Column) *Blueprint {
	b.columns = append(b.columns, col)
	return b
}

// ID creates an auto-incrementing primary key
func (b *Blueprint) ID() *Blueprint {
	return b.add(Column{Name: "id", Type: "id", Primary: true, Auto: true})
}

// String creates a VARCHAR column
func (b *Blueprint) String(name string, length ...int) *Blueprint {
	col := Column{Name: name, Type: "string", Length: 255, Nullable: true}
	if len(length) > 0 {
		col.Length = length[0]
	}
	return b.add(col)
}

// Text creates a TEXT column
func (b *Blueprint) Text(name string) *Blueprint {
	return b.add(Column{Name: name, Type: "text", Nullable: true})
}

// Integer creates an INT column
func (b *Blueprint) Integer(name string) *Blueprint {
	return b.add(Column{Name: name, Type: "integer", Nullable: true})
}

// BigInteger creates a BIGINT column
func (b *Blueprint) BigInteger(name string) *Blueprint {
	return b.add(Column{Name: name, Type: "bigint", Nullable: true})
}

// Boolean creates a BOOLEAN column
func (b *Blueprint) Boolean(name string) *Blueprint {
	return b.add(Column{Name: name, Type: "boolean", Nullable: true, Default: false})
}

// JSON creates a JSON column
func (b *Blueprint) JSON(name string) *Blueprint {
	return b.add(Column{Name: name, Type: "json", Nullable: true})
}

// Timestamp creates a TIMESTAMP column
func (b *Blueprint) Timestamp(name string) *Blueprint {
	return b.add(Column{Name: name, Type: "timestamp", Nullable: true})
}

// Timestamps creates created_at and updated_at columns
func (b *Blueprint) Timestamps() *Blueprint {
	b.Timestamp("created_at").NotNullable().Default("CURRENT_TIMESTAMP")
	b.Timestamp("updated_at").Nullable()
	return b
}

// Decimal creates a DECIMAL column
func (b *Blueprint) Decimal(name string, precision, scale int) *Blueprint {
	return b.add(Column{Name: name, Type: "decimal", Precision: precision, Scale: scale, Nullable: true})
}

// UUID creates a UUID column
func (b *Blueprint) UUID(name string) *Blueprint {
	return b.add(Column{Name: name, Type: "uuid", Nullable: true})
}

// Enum creates an ENUM column
func (b *Blueprint) Enum(name string, values []string) *Blueprint {
	return b.add(Column{Name: name, Type: "enum", EnumValues: values, Nullable: true})
}

// Date creates a DATE column
func (b *Blueprint) Date(name string) *Blueprint {
	return b.add(Column{Name: name, Type: "date", Nullable: true})
}

// DateTime creates a DATETIME column
func (b *Blueprint) DateTime(name string) *Blueprint {
	return b.add(Column{Name: name, Type: "datetime", Nullable: true})
}

// Column modifier methods - chainable

func (b *Blueprint) last() *Column {
	if len(b.columns) == 0 {
		return &Column{}
	}
	return &b.columns[len(b.columns)-1]
}

// NotNullable makes the column NOT NULL
func (b *Blueprint) NotNullable() *Blueprint {
	b.last().Nullable = false
	return b
}

// Nullable makes the column nullable
func (b *Blueprint) Nullable() *Blueprint {
	b.last().Nullable = true
	return b
}

// Default sets a default value
func (b *Blueprint) Default(value any) *Blueprint {
	b.last().Default = value
	return b
}

// Unique makes the column unique
func (b *Blueprint) Unique() *Blueprint {
	b.last().Unique = true
	return b
}

// Unsigned marks a numeric column UNSIGNED (MySQL only)
func (b *Blueprint) Unsigned() *Blueprint {
	b.last().Unsigned = true
	return b
}

// Comment adds a comment (MySQL only)
func (b *Blueprint) Comment(comment string) *Blueprint {
	b.last().Comment = comment
	return b
}

// Index creates an index
func (b *Blueprint) Index(columns []string, name ...string) *Blueprint {
	indexName := fmt.Sprintf("idx_%s_%s", b.tableName, strings.Join(columns, "_"))
	if len(name) > 0 {
		indexName = name[0]
	}
	b.indexes = append(b.indexes, Index{Name: indexName, Columns: columns, Type: "index"})
	return b
}

// UniqueIndex creates a unique index
func (b *Blueprint) UniqueIndex(columns []string, name ...string) *Blueprint {
	indexName := fmt.Sprintf("unique_%s_%s", b.tableName, strings.Join(columns, "_"))
	if len(name) > 0 {
		indexName = name[0]
	}
	b.indexes = append(b.indexes, Index{Name: indexName, Columns: columns, Type: "unique"})
	return b
}

// Primary declares a (possibly composite) primary key
func (b *Blueprint) Primary(columns []string) *Blueprint {
	b.primary = columns
	return b
}

// Foreign creates a foreign key
func (b *Blueprint) Foreign(column string) *ForeignKeyBuilder {
	return &ForeignKeyBuilder{blueprint: b, column: column}
}

// ForeignKeyBuilder helps build foreign key constraints
type ForeignKeyBuilder struct {
	blueprint *Blueprint
	column    string
	fk        ForeignKey
}

// References sets the referenced column
func (fkb *ForeignKeyBuilder) References(column string) *ForeignKeyBuilder {
	fkb.fk.References = column
	return fkb
}

// On sets the referenced table
func (fkb *ForeignKeyBuilder) On(table string) *ForeignKeyBuilder {
	fkb.fk.On = table
	return fkb
}

// OnDelete sets the ON DELETE action
func (fkb *ForeignKeyBuilder) OnDelete(action string) *ForeignKeyBuilder {
	fkb.fk.OnDelete = action
	return fkb
}

// OnUpdate sets the ON UPDATE action
func (fkb *ForeignKeyBuilder) OnUpdate(action string) *ForeignKeyBuilder {
	fkb.fk.OnUpdate = action
	return fkb
}

// Finish completes the foreign key definition
func (fkb *ForeignKeyBuilder) Finish() *Blueprint {
	fkb.fk.Column = fkb.column
	fkb.blueprint.foreign = append(fkb.blueprint.foreign, fkb.fk)
	return fkb.blueprint
}

// ToSQL renders all statements, one per line.
func (b *Blueprint) ToSQL() string {
	return strings.Join(b.Statements(), "\n")
}

// Statements returns the DDL statements for the blueprint. Indexes are always
// separate CREATE INDEX statements since only MySQL accepts them inline.
func (b *Blueprint) Statements() []string {
	var statements []string
	if b.mode == "alter" {
		for _, col := range b.columns {
			statements = append(statements, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s;", b.tableName, b.columnToSQL(col)))
		}
	} else {
		statements = append(statements, b.toCreateSQL())
	}

	for _, idx := range b.indexes {
		kind := "INDEX"
		if idx.Type == "unique" {
			kind = "UNIQUE INDEX"
		}
		statements = append(statements, fmt.Sprintf("CREATE %s %s ON %s (%s);",
			kind, idx.Name, b.tableName, strings.Join(idx.Columns, ", ")))
	}

	return statements
}

func (b *Blueprint) toCreateSQL() string {
	var sql strings.Builder

	sql.WriteString(fmt.Sprintf("CREATE TABLE %s (\n", b.tableName))

	parts := make([]string, 0, len(b.columns)+len(b.foreign)+1)
	for _, col := range b.columns {
		parts = append(parts, b.columnToSQL(col))
	}
	if len(b.primary) > 0 {
		parts = append(parts, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(b.primary, ", ")))
	}
	for _, fk := range b.foreign {
		parts = append(parts, b.foreignKeyToSQL(fk))
	}

	sql.WriteString("  " + strings.Join(parts, ",\n  "))
	sql.WriteString("\n);")

	return sql.String()
}

func quoteValue(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

func (b *Blueprint) columnToSQL(col Column) string {
	parts := []string{col.Name, b.getColumnType(col)}

	if col.Unsigned && b.dbType == "mysql" && col.Type != "id" {
		parts = append(parts, "UNSIGNED")
	}

	// the id type already carries its primary key clause
	if !col.Nullable && col.Type != "id" {
		parts = append(parts, "NOT NULL")
	}

	if col.Default != nil {
		if str, ok := col.Default.(string); ok {
			if strings.ToUpper(str) == "CURRENT_TIMESTAMP" {
				parts = append(parts, "DEFAULT CURRENT_TIMESTAMP")
			} else {
				parts = append(parts, "DEFAULT "+quoteValue(str))
			}
		} else {
			parts = append(parts, fmt.Sprintf("DEFAULT %v", col.Default))
		}
	}

	if col.Unique {
		parts = append(parts, "UNIQUE")
	}

	if col.Comment != "" && b.dbType == "mysql" {
		parts = append(parts, "COMMENT "+quoteValue(col.Comment))
	}

	if col.Type == "enum" && len(col.EnumValues) > 0 && b.dbType != "mysql" {
		quoted := make([]string, len(col.EnumValues))
		for i, v := range col.EnumValues {
			quoted[i] = quoteValue(v)
		}
		parts = append(parts, fmt.Sprintf("CHECK (%s IN (%s))", col.Name, strings.Join(quoted, ", ")))
	}

	return strings.Join(parts, " ")
}

// getColumnType returns database-specific column type
func (b *Blueprint) getColumnType(col Column) string {
	mysql, postgres, sqlite := b.dbType == "mysql", b.dbType == "postgres", b.dbType == "sqlite"

	switch col.Type {
	case "id":
		switch {
		case mysql:
			return "BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY"
		case postgres:
			return "BIGSERIAL PRIMARY KEY"
		default:
			return "INTEGER PRIMARY KEY AUTOINCREMENT"
		}
	case "string":
		return fmt.Sprintf("VARCHAR(%d)", col.Length)
	case "text":
		return "TEXT"
	case "integer":
		if mysql {
			return "INT"
		}
		return "INTEGER"
	case "bigint":
		if sqlite {
			return "INTEGER"
		}
		return "BIGINT"
	case "boolean":
		switch {
		case mysql:
			return "TINYINT(1)"
		case postgres:
			return "BOOLEAN"
		default:
			return "INTEGER"
		}
	case "json":
		switch {
		case mysql:
			return "JSON"
		case postgres:
			return "JSONB"
		default:
			return "TEXT"
		}
	case "timestamp":
		if sqlite {
			return "DATETIME"
		}
		return "TIMESTAMP"
	case "datetime":
		if postgres {
			return "TIMESTAMP"
		}
		return "DATETIME"
	case "date":
		return "DATE"
	case "decimal":
		if sqlite {
			return "REAL"
		}
		return fmt.Sprintf("DECIMAL(%d,%d)", col.Precision, col.Scale)
	case "uuid":
		if postgres {
			return "UUID"
		}
		return "CHAR(36)"
	case "enum":
		return b.getEnumType(col)
	}

	return col.Type
}

// getEnumType returns database-specific ENUM type. Other dialects get a
// CHECK constraint from columnToSQL.
func (b *Blueprint) getEnumType(col Column) string {
	if len(col.EnumValues) == 0 {
		return "VARCHAR(255)"
	}

	switch b.dbType {
	case "mysql":
		quoted := make([]string, len(col.EnumValues))
		for i, v := range col.EnumValues {
			quoted[i] = quoteValue(v)
		}
		return fmt.Sprintf("ENUM(%s)", strings.Join(quoted, ", "))
	case "sqlite":
		return "TEXT"
	default:
		return "VARCHAR(255)"
	}
}

func (b *Blueprint) foreignKeyToSQL(fk ForeignKey) string {
	sql := fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)", fk.Column, fk.On, fk.References)

	if fk.OnDelete != "" {
		sql += " ON DELETE " + fk.OnDelete
	}
	if fk.OnUpdate != "" {
		sql += " ON UPDATE " + fk.OnUpdate
	}

	return sql
}
