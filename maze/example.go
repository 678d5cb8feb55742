package maze

// ExampleMazeText is a hand-drawn 25x13 maze in the persisted text form.
// It is enclosed and solvable but contains loops and unreachable pockets, so
// Load rejects it as not perfect.
const ExampleMazeText = "" +
	"111111111111111111111111111111111111111111111111111|" +
	"100000000000000000000000000000000000000000000000001|" +
	"101110111011111011111111111111100011111111111111111|" +
	"101010101010001010000000000000100010000000000000001|" +
	"101010101011111011111000001110100010111111101111101|" +
	"101010101000000000001000001010000010100000101000101|" +
	"101011101110111011101011111011111110101110101110101|" +
	"101000000010101010101010000000000000101010100000101|" +
	"101111111010101010101010111111101111101010111111101|" +
	"100000001010101010101010100000101000001010000000001|" +
	"101111101010101110101010111110101011111000101110111|" +
	"101000101000100000101010000010101000000000101010101|" +
	"101011101110101111101010111010111011111110101010101|" +
	"101010000010101000000010100010000000000010100010101|" +
	"101010111110101011101110111110111111111010111110111|" +
	"101010100000101010101000000000100000001010000000001|" +
	"101010101111101010101111101111101111111010111111101|" +
	"101000100000000010100000101000001000000010100000101|" +
	"101110111111111010111111101011111011101110101110101|" +
	"100010000000001010000000001010000010101000001010101|" +
	"101110111111101011111111111010111110101011101010101|" +
	"101000100000101000000000000010100000101000101010101|" +
	"101110111111101111111111111110111110101111101010101|" +
	"100010000000000000000000000000000010100000001010101|" +
	"101110111110111111111111111111111110111111111011101|" +
	"101000100010100000000000000000000000000000000000001|" +
	"111111111111111111111111111111111111111111111111111"
