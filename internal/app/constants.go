package app

// MinPlayersToStartGame defines the minimum number of players required to start a game.
const MinPlayersToStartGame = 2

// MaxPlayersPerGame is the table size the 106-tile set is designed for.
const MaxPlayersPerGame = 4
