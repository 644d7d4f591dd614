package services

import "math/rand/v2"

var fortunes = []string{
	"Conquer your fears or they will conquer you.",
	"Rivers need springs.",
	"Do not fear what you don't know.",
	"You will have a pleasant surprise.",
	"Whenever possible, keep it simple.",
}

// RandomFortune returns one of the fortune cookie messages shown on the about page
func RandomFortune() string {
	return fortunes[rand.IntN(len(fortunes))]
}
