package domain

// Stats summarises one list of products
type Stats struct {
	ProductCount int     `json:"product_count"`
	BrandCount   int     `json:"brand_count"`
	AvgPrice     float64 `json:"avg_price"`
}

// Statistics holds the stats of the unfiltered and the filtered product lists
type Statistics struct {
	Unfiltered Stats `json:"unfiltered"`
	Filtered   Stats `json:"filtered"`
}

// ComputeStats counts distinct product ids and brands and averages the price
// over every element, duplicates included.
func ComputeStats(products []Product) (Stats, error) {
	if len(products) == 0 {
		return Stats{}, ErrEmptyDataset
	}

	ids := make(map[int64]struct{}, len(products))
	brands := make(map[string]struct{})
	var total float64
	for _, p := range products {
		ids[p.ProductID] = struct{}{}
		brands[p.BrandName] = struct{}{}
		total += p.Price
	}

	return Stats{
		ProductCount: len(ids),
		BrandCount:   len(brands),
		AvgPrice:     total / float64(len(products)),
	}, nil
}
