package model

// AllModels 用于 AutoMigrate
var AllModels = []interface{}{
	&Favorite{},
}
