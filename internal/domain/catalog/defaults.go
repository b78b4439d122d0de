package catalog

// Managerial returns the nine-item managerial catalog, each item scored 0..6.
func Managerial() Catalog {
	return Catalog{
		Key:  KeyManagerial,
		Name: "Kompetensi Manajerial",
		Items: []Item{
			{Code: "M1", Label: "Integritas"},
			{Code: "M2", Label: "Kerjasama"},
			{Code: "M3", Label: "Komunikasi"},
			{Code: "M4", Label: "Mengelola Perubahan"},
			{Code: "M5", Label: "Orientasi pada Hasil"},
			{Code: "M6", Label: "Pelayanan Publik"},
			{Code: "M7", Label: "Pengambilan Keputusan"},
			{Code: "M8", Label: "Pengembangan Diri"},
			{Code: "M9", Label: "Perekat Bangsa"},
		},
		MaxItemScore:  6,
		ReferenceLine: 4,
		RadarMax:      6,
		Thresholds:    DefaultThresholds(),
	}
}

// Technical returns the six-item technical catalog, each item scored 0..10.
func Technical() Catalog {
	return Catalog{
		Key:  KeyTechnical,
		Name: "Kompetensi Teknis",
		Items: []Item{
			{Code: "T1", Label: "Distribusi"},
			{Code: "T2", Label: "IPDS"},
			{Code: "T3", Label: "Neraca"},
			{Code: "T4", Label: "Produksi"},
			{Code: "T5", Label: "Sosial"},
			{Code: "T6", Label: "Umum"},
		},
		MaxItemScore:  10,
		ReferenceLine: 7,
		RadarMax:      10,
		Thresholds:    DefaultThresholds(),
	}
}

// Defaults returns the managerial and technical catalogs.
func Defaults() Set {
	return Set{Managerial(), Technical()}
}
