package database

import (
	"strings"
	"testing"
)

func TestCreateTableDifferentDatabases(t *testing.T) {
	tests := []struct {
		dbType string
		id     string
		uuid   string
		status string
	}{
		{"mysql", "id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY", "uuid CHAR(36) NOT NULL UNIQUE", "status ENUM('draft', 'open') NOT NULL DEFAULT 'draft'"},
		{"postgres", "id BIGSERIAL PRIMARY KEY", "uuid UUID NOT NULL UNIQUE", "status VARCHAR(255) NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'open'))"},
		{"sqlite", "id INTEGER PRIMARY KEY AUTOINCREMENT", "uuid CHAR(36) NOT NULL UNIQUE", "status TEXT NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'open'))"},
	}

	for _, tt := range tests {
		t.Run(tt.dbType, func(t *testing.T) {
			blueprint := NewBlueprint("petitions", tt.dbType)
			blueprint.ID()
			blueprint.UUID("uuid").NotNullable().Unique()
			blueprint.Enum("status", []string{"draft", "open"}).NotNullable().Default("draft")
			blueprint.Timestamps()

			sql := blueprint.ToSQL()

			for _, want := range []string{"CREATE TABLE petitions (", tt.id, tt.uuid, tt.status} {
				if !strings.Contains(sql, want) {
					t.Errorf("[%s] Expected SQL to contain %q, got: %s", tt.dbType, want, sql)
				}
			}
			if strings.Contains(sql, "PRIMARY KEY NOT NULL") {
				t.Errorf("[%s] id column must not repeat NOT NULL, got: %s", tt.dbType, sql)
			}
			if !strings.Contains(sql, "created_at") || !strings.Contains(sql, "DEFAULT CURRENT_TIMESTAMP") {
				t.Errorf("[%s] Expected timestamps, got: %s", tt.dbType, sql)
			}
		})
	}
}

func TestIndexesAreSeparateStatements(t *testing.T) {
	blueprint := NewBlueprint("petitions", "sqlite")
	blueprint.ID()
	blueprint.String("status", 20)
	blueprint.String("category", 50)
	blueprint.Index([]string{"status"})
	blueprint.UniqueIndex([]string{"category", "status"}, "petitions_category_status")

	statements := blueprint.Statements()
	if len(statements) != 3 {
		t.Fatalf("Expected 3 statements, got %d: %v", len(statements), statements)
	}
	if strings.Contains(statements[0], "INDEX") {
		t.Errorf("CREATE TABLE must not carry inline indexes, got: %s", statements[0])
	}
	if statements[1] != "CREATE INDEX idx_petitions_status ON petitions (status);" {
		t.Errorf("Unexpected index statement: %s", statements[1])
	}
	if statements[2] != "CREATE UNIQUE INDEX petitions_category_status ON petitions (category, status);" {
		t.Errorf("Unexpected unique index statement: %s", statements[2])
	}
}

func TestAlterTableAddsColumns(t *testing.T) {
	blueprint := NewBlueprint("petitions", "postgres")
	blueprint.SetMode("alter")
	blueprint.Integer("views").NotNullable().Default(0)
	blueprint.JSON("metadata")

	sql := blueprint.ToSQL()

	if !strings.Contains(sql, "ALTER TABLE petitions ADD COLUMN views INTEGER NOT NULL DEFAULT 0;") {
		t.Errorf("Expected views column, got: %s", sql)
	}
	if !strings.Contains(sql, "ALTER TABLE petitions ADD COLUMN metadata JSONB;") {
		t.Errorf("Expected metadata column, got: %s", sql)
	}
}

func TestUnsignedOnlyOnMySQL(t *testing.T) {
	for _, dbType := range []string{"mysql", "sqlite"} {
		blueprint := NewBlueprint("petitions", dbType)
		blueprint.Integer("signature_goal").NotNullable().Unsigned()
		blueprint.Decimal("budget", 10, 2).Unsigned()

		sql := blueprint.ToSQL()
		hasUnsigned := strings.Contains(sql, "UNSIGNED")

		if dbType == "mysql" && (!strings.Contains(sql, "INT UNSIGNED NOT NULL") || !strings.Contains(sql, "DECIMAL(10,2) UNSIGNED")) {
			t.Errorf("[mysql] Expected UNSIGNED modifiers, got: %s", sql)
		}
		if dbType == "sqlite" && hasUnsigned {
			t.Errorf("[sqlite] Did not expect UNSIGNED, got: %s", sql)
		}
	}
}

func TestCompositePrimaryAndForeignKey(t *testing.T) {
	blueprint := NewBlueprint("petition_signatures", "mysql")
	blueprint.BigInteger("petition_id").NotNullable()
	blueprint.String("email").NotNullable()
	blueprint.Primary([]string{"petition_id", "email"})
	blueprint.Foreign("petition_id").References("id").On("petitions").OnDelete("CASCADE").OnUpdate("CASCADE").Finish()

	sql := blueprint.ToSQL()

	if !strings.Contains(sql, "PRIMARY KEY (petition_id, email)") {
		t.Errorf("Expected composite primary key, got: %s", sql)
	}
	if !strings.Contains(sql, "FOREIGN KEY (petition_id) REFERENCES petitions (id) ON DELETE CASCADE ON UPDATE CASCADE") {
		t.Errorf("Expected foreign key, got: %s", sql)
	}
}

func TestDefaultValuesAreQuoted(t *testing.T) {
	blueprint := NewBlueprint("petitions", "sqlite")
	blueprint.String("recipient").Default("O'Brien")
	blueprint.Boolean("featured")

	sql := blueprint.ToSQL()

	if !strings.Contains(sql, "DEFAULT 'O''Brien'") {
		t.Errorf("Expected escaped default, got: %s", sql)
	}
	if !strings.Contains(sql, "featured INTEGER DEFAULT false") {
		t.Errorf("Expected boolean default, got: %s", sql)
	}
}

func TestExtractTableName(t *testing.T) {
	cases := map[string]string{
		"create_petitions_table": "petitions",
		"create_petitions":       "petitions",
		"add_slug_to_petitions":  "example_table",
		"create_":                "example_table",
	}
	for name, want := range cases {
		if got := ExtractTableName(name); got != want {
			t.Errorf("ExtractTableName(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestCreateMigrationTemplate(t *testing.T) {
	src := CreateMigrationTemplate("github.com/acme/app", "create_signatures_table", 1700000000)

	for _, want := range []string{
		`"github.com/acme/app/database"`,
		"type Migration1700000000 struct",
		`Name:      "create_signatures_table"`,
		`schema.Create("signatures"`,
		`schema.DropIfExists("signatures")`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("Expected template to contain %q, got:\n%s", want, src)
		}
	}
}
