package db

import "eshoplite/internal/domain"

// SeedProducts es el catalogo inicial de la tienda.
var SeedProducts = []domain.Product{
	{Name: "Solar Powered Flashlight", Description: "A fantastic product for outdoor enthusiasts", Price: 19.99, ImageURL: "product1.png"},
	{Name: "Hiking Poles", Description: "Ideal for camping and hiking trips", Price: 24.99, ImageURL: "product2.png"},
	{Name: "Outdoor Rain Jacket", Description: "This product will keep you warm and dry in all weathers", Price: 49.99, ImageURL: "product3.png"},
	{Name: "Survival Kit", Description: "A must-have for any outdoor adventurer", Price: 99.99, ImageURL: "product4.png"},
	{Name: "Outdoor Backpack", Description: "This backpack is perfect for carrying all your outdoor essentials", Price: 39.99, ImageURL: "product5.png"},
	{Name: "Camping Cookware", Description: "This cookware set is ideal for cooking outdoors", Price: 29.99, ImageURL: "product6.png"},
	{Name: "Camping Stove", Description: "This stove is perfect for cooking outdoors", Price: 49.99, ImageURL: "product7.png"},
	{Name: "Camping Lantern", Description: "This lantern is perfect for lighting up your campsite", Price: 19.99, ImageURL: "product8.png"},
	{Name: "Camping Tent", Description: "This tent is perfect for camping trips", Price: 99.99, ImageURL: "product9.png"},
}

var SeedStores = []domain.StoreInfo{
	{Name: "Outdoor Store Seattle", City: "Seattle", State: "WA", Hours: "Mon-Sat 8AM-9PM, Sun 9AM-6PM"},
	{Name: "Mountain Gear Denver", City: "Denver", State: "CO", Hours: "Mon-Sat 8AM-9PM, Sun 9AM-6PM"},
	{Name: "Trail Supply Austin", City: "Austin", State: "TX", Hours: "Mon-Sat 8AM-9PM, Sun 9AM-6PM"},
	{Name: "Cascade Outfitters Portland", City: "Portland", State: "OR", Hours: "Mon-Sat 8AM-9PM, Sun 9AM-6PM"},
}
