package catalog

type heroRow struct {
	id   int64
	name string
}

var heroRows = []heroRow{
	{1, "Abrams"},
	{2, "Bebop"},
	{3, "Dynamo"},
	{4, "Grey Talon"},
	{6, "Haze"},
	{7, "Wraith"},
	{8, "McGinnis"},
	{10, "Paradox"},
	{11, "Infernus"},
	{12, "Kelvin"},
	{13, "Lady Geist"},
	{14, "Holliday"},
	{15, "Lash"},
	{16, "Calico"},
	{17, "Mo & Krill"},
	{18, "Pocket"},
	{19, "Shiv"},
	{20, "Ivy"},
	{25, "Warden"},
	{27, "Yamato"},
	{31, "Seven"},
	{35, "Viscous"},
	{50, "Vindicta"},
	{52, "Mirage"},
	{58, "Vyper"},
	{60, "Sinclair"},
}
