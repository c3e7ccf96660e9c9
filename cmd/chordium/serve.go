package main

import (
	"net/http"

	"github.com/chordium/chordium/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", ":8080", "address to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve scale chords, borrowed chords and the modifier catalog over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := zap.NewProduction()
		if err != nil {
			return err
		}
		defer log.Sync()
		log.Info("listening", zap.String("addr", serveAddr))
		return http.ListenAndServe(serveAddr, server.New(log).Handler())
	},
}
