package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/yaptide/chipstack/config"
	"github.com/yaptide/chipstack/web"
)

func generateServeCmd(conf *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "start http api",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(conf, true); err != nil {
				return err
			}
			router, routerErr := web.NewRouter(conf)
			if routerErr != nil {
				return routerErr
			}
			address := fmt.Sprintf(":%d", conf.Port)
			log.Infof("Listening on %s", address)
			return http.ListenAndServe(address, router)
		},
	}
	cmd.Flags().Int64VarP(&conf.Port, "port", "p", conf.Port, "http port")
	cmd.Flags().StringVar(&conf.DbURL, "db-url", conf.DbURL, "mongo url, empty keeps simulations in memory")
	cmd.Flags().IntVarP(&conf.Workers, "workers", "w", conf.Workers, "number of simulations built at the same time")
	return cmd
}
