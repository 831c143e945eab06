package seed

// Name pools for generated records. Drawn from common South African names
// and places so demo data reads like real listings.

var firstNames = []string{
	"Thabo", "Lerato", "Sipho", "Annelie", "Johan", "Nomvula", "Pieter",
	"Zanele", "Kagiso", "Elmarie", "Mandla", "Chantelle", "Bongani",
	"Riaan", "Precious", "Andile", "Marike", "Tshepo", "Naledi", "Dawie",
}

var lastNames = []string{
	"Nkosi", "van der Merwe", "Dlamini", "Botha", "Mokoena", "Pretorius",
	"Khumalo", "Naidoo", "Pillay", "du Plessis", "Mahlangu", "Venter",
	"Sithole", "Jacobs", "Mthembu", "Fourie", "Ngcobo", "Steyn",
}

var suburbs = []string{
	"Parkhurst", "Sea Point", "Umhlanga", "Hatfield", "Observatory",
	"Stellenbosch Central", "Ballito", "Melville", "Green Point",
	"Sandown", "Westdene", "Summerstrand",
}

var streets = []string{
	"Acacia Avenue", "Protea Road", "Marula Street", "Jacaranda Lane",
	"Baobab Crescent", "Fynbos Close", "Karee Street", "Aloe Drive",
}

var complexNames = []string{
	"The Willows", "Stonebridge Estate", "Fairview Heights",
	"Riverside Manor", "Khaya Gardens", "Mountain View Villas",
}

// cityProvinces pairs each demo city with its province.
var cityProvinces = []struct {
	City     string
	Province string
}{
	{"Johannesburg", "Gauteng"},
	{"Pretoria", "Gauteng"},
	{"Cape Town", "Western Cape"},
	{"Stellenbosch", "Western Cape"},
	{"Durban", "KwaZulu-Natal"},
	{"Gqeberha", "Eastern Cape"},
	{"Bloemfontein", "Free State"},
	{"Polokwane", "Limpopo"},
	{"Mbombela", "Mpumalanga"},
	{"Kimberley", "Northern Cape"},
	{"Rustenburg", "North West"},
}

var banks = []struct {
	Name       string
	BranchCode string
}{
	{"FNB", "250655"},
	{"Standard Bank", "051001"},
	{"Absa", "632005"},
	{"Nedbank", "198765"},
	{"Capitec", "470010"},
}

var maintenanceTitles = map[string][]string{
	"plumbing":   {"Leaking geyser", "Blocked drain", "Dripping kitchen tap"},
	"electrical": {"Tripping breaker", "Broken light fitting", "Faulty stove plate"},
	"structural": {"Cracked boundary wall", "Roof tiles loose", "Damp in bedroom wall"},
	"appliance":  {"Oven not heating", "Washing machine leak"},
	"garden":     {"Irrigation timer broken", "Tree roots lifting paving"},
	"other":      {"Gate motor intermittent", "Intercom not working"},
}
