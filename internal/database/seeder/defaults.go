package seeder

// Demo returns the seeders that load the demo accounts and postings.
func Demo(password string) []Seeder {
	return []Seeder{
		AccountsSeeder{Password: password},
		JobsSeeder{},
	}
}
