package blockflow

//go:generate mockgen -destination=mock_runner_test.go -package=blockflow github.com/birdayz/blockflow/kblock Runner
