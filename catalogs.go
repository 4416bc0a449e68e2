package main

// Static game catalogs. Clients resolve these references against their
// own bundled assets; the server never serves the images themselves.

// memoryFaces is the memory deck catalog; each face appears on exactly
// two cards.
var memoryFaces = []string{
	"/images/rubber-duck.png",
	"/images/smiling.png",
	"/images/golf-club.png",
	"/images/dolphin.png",
	"/images/Tea-Rex.png",
	"/images/koala.png",
	"/images/cat.png",
	"/images/dog.png",
}

// logoPair holds the genuine logo and its lookalike for one brand.
type logoPair struct {
	real string
	fake string
}

var logoCatalog = map[string]logoPair{
	"Apple":      {real: "/logos/apple-real.png", fake: "/logos/apple-fake.png"},
	"Nike":       {real: "/logos/nike-real.png", fake: "/logos/nike-fake.png"},
	"McDonalds":  {real: "/logos/mcdonalds-real.png", fake: "/logos/mcdonalds-fake.png"},
	"Starbucks":  {real: "/logos/starbucks-real.png", fake: "/logos/starbucks-fake.png"},
	"Adidas":     {real: "/logos/adidas-real.png", fake: "/logos/adidas-fake.png"},
	"Google":     {real: "/logos/google-real.png", fake: "/logos/google-fake.png"},
	"Pepsi":      {real: "/logos/pepsi-real.png", fake: "/logos/pepsi-fake.png"},
	"Amazon":     {real: "/logos/amazon-real.png", fake: "/logos/amazon-fake.png"},
	"Spotify":    {real: "/logos/spotify-real.png", fake: "/logos/spotify-fake.png"},
	"Volkswagen": {real: "/logos/volkswagen-real.png", fake: "/logos/volkswagen-fake.png"},
}
