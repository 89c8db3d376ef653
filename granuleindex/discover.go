package granuleindex

import (
	"github.com/venicegeo/bf-viirs/granuleindex/db"
	"github.com/venicegeo/bf-viirs/model"
)

func discoverGranules(ctx Context, params db.SearchParams) (model.GeoJSONFeatureCollectionCreator, error) {
	rows, err := ctx.Store.Search(params)
	if err != nil {
		return nil, err
	}

	multiResult := model.MultiGranuleResult{
		FeatureCreators: make([]model.GeoJSONFeatureCreator, len(rows)),
	}
	for i, row := range rows {
		result, err := resultFromRow(row)
		if err != nil {
			return nil, err
		}
		multiResult.FeatureCreators[i] = result
	}
	return multiResult, nil
}

func getGranule(ctx Context, id string) (model.GeoJSONFeatureCreator, error) {
	row, err := ctx.Store.Get(id)
	if err != nil {
		return nil, err
	}
	return resultFromRow(*row)
}
