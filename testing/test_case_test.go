package testing_test

import (
	"testing"

	"github.com/galaplate/petitions/database"
	apptesting "github.com/galaplate/petitions/testing"
	"github.com/stretchr/testify/suite"
)

type createNotesTable struct {
	database.BaseMigration
}

func (m *createNotesTable) Up(schema *database.Schema) error {
	return schema.Create("notes", func(table *database.Blueprint) {
		table.ID()
		table.String("body").NotNullable()
		table.Timestamps()
	})
}

func (m *createNotesTable) Down(schema *database.Schema) error {
	return schema.DropIfExists("notes")
}

type TestCaseSuite struct {
	apptesting.TestCase
}

func (s *TestCaseSuite) SetupSuite() {
	s.Config = apptesting.DefaultTestConfig()
	s.Config.Registry = database.NewMigrationRegistry(&createNotesTable{
		BaseMigration: database.BaseMigration{Name: "create_notes_table", Timestamp: 1},
	})
}

func (s *TestCaseSuite) TestDatabaseIsMigratedAndInstalled() {
	s.Same(s.DB, database.Connect)
	s.True(database.NewSchemaFor(s.DB).HasTable("notes"))

	db := apptesting.NewDatabaseHelper(&s.TestCase)
	db.AssertDatabaseCount("notes", 0)
}

func (s *TestCaseSuite) TestDatabaseHelperAssertions() {
	db := apptesting.NewDatabaseHelper(&s.TestCase)

	s.Require().NoError(s.DB.Exec("INSERT INTO notes (body) VALUES (?), (?)", "first", "second").Error)

	db.AssertDatabaseCount("notes", 2)
	db.AssertDatabaseHas("notes", map[string]any{"body": "first"})
	db.AssertDatabaseMissing("notes", map[string]any{"body": "third"})
	s.EqualValues(1, db.Count("notes", map[string]any{"body": "second"}))
}

func (s *TestCaseSuite) TestEveryTestStartsEmpty() {
	apptesting.NewDatabaseHelper(&s.TestCase).AssertDatabaseCount("notes", 0)
}

func (s *TestCaseSuite) TestRefreshDatabase() {
	s.Require().NoError(s.DB.Exec("INSERT INTO notes (body) VALUES (?)", "gone").Error)
	s.Require().NoError(s.RefreshDatabase())

	apptesting.NewDatabaseHelper(&s.TestCase).AssertDatabaseCount("notes", 0)
}

func TestTestCaseSuite(t *testing.T) {
	suite.Run(t, new(TestCaseSuite))
}
