package migrations

import (
	"github.com/galaplate/petitions/database"
	"github.com/galaplate/petitions/models"
)

type Migration20250601120000 struct {
	database.BaseMigration
}

func init() {
	database.Register(&Migration20250601120000{
		BaseMigration: database.BaseMigration{
			Name:      "create_petitions_table",
			Timestamp: 20250601120000,
		},
	})
}

func (m *Migration20250601120000) Up(schema *database.Schema) error {
	return schema.Create("petitions", func(table *database.Blueprint) {
		table.ID()
		table.UUID("uuid").NotNullable().Unique()
		table.String("title").NotNullable()
		table.String("slug").NotNullable().Unique()
		table.Text("description").NotNullable()
		table.String("recipient").NotNullable()
		table.Enum("category", models.PetitionCategories).NotNullable()
		table.String("author_name").NotNullable()
		table.String("author_email").NotNullable()
		table.String("location")
		table.Integer("signature_goal").NotNullable().Unsigned()
		table.Integer("signature_count").NotNullable().Unsigned().Default(0)
		table.Enum("status", models.PetitionStatuses).NotNullable().Default(string(models.PetitionDraft))
		table.Timestamp("published_at")
		table.Timestamps()

		table.Index([]string{"status"})
		table.Index([]string{"category", "status"})
	})
}

func (m *Migration20250601120000) Down(schema *database.Schema) error {
	return schema.DropIfExists("petitions")
}
