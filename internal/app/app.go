package app

import (
	"github.com/humanbelnik/planpoker/core/internal/config"
	http_init "github.com/humanbelnik/planpoker/core/internal/delivery/http/init"
	http_access_middleware "github.com/humanbelnik/planpoker/core/internal/delivery/http/middleware/access"
	http_metrics "github.com/humanbelnik/planpoker/core/internal/delivery/http/metrics"
	http_identity_middleware "github.com/humanbelnik/planpoker/core/internal/delivery/http/middleware/identity"
	http_participant "github.com/humanbelnik/planpoker/core/internal/delivery/http/participant"
	http_room "github.com/humanbelnik/planpoker/core/internal/delivery/http/room"
	http_session "github.com/humanbelnik/planpoker/core/internal/delivery/http/session"
	http_swagger "github.com/humanbelnik/planpoker/core/internal/delivery/http/swagger"
	ws_room "github.com/humanbelnik/planpoker/core/internal/delivery/ws/room"
	infra_pg_init "github.com/humanbelnik/planpoker/core/internal/infra/postgres/init"
	infra_postgres_room "github.com/humanbelnik/planpoker/core/internal/infra/postgres/room"
	infra_redis_changefeed "github.com/humanbelnik/planpoker/core/internal/infra/redis/changefeed"
	infra_redis_init "github.com/humanbelnik/planpoker/core/internal/infra/redis/init"
	infra_session_cache "github.com/humanbelnik/planpoker/core/internal/infra/redis/session"
	service_auth "github.com/humanbelnik/planpoker/core/internal/service/auth"
	usecase_room "github.com/humanbelnik/planpoker/core/internal/usecase/room"
)

func Go(cfg *config.Config) {

	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)

	roomRepository := infra_postgres_room.New(pgConn)
	changeFeed := infra_redis_changefeed.New(redisConn)

	roomUC := usecase_room.New(roomRepository, changeFeed)

	sessionCache := infra_session_cache.New(redisConn, "anon_session")
	authService := service_auth.New(cfg.Auth.JWTSecret, sessionCache, cfg.Auth.AnonymousSessionTTL)
	identity := http_identity_middleware.New(authService).Required()

	hub := ws_room.NewHub(ws_room.SubscriberFunc(func(roomID, table string) (ws_room.Feed, error) {
		sub, err := changeFeed.Subscribe(roomID, table)
		if err != nil {
			return nil, err
		}
		return sub, nil
	}))

	controllerPool := http_init.NewControllerPool()
	controllerPool.Use(http_access_middleware.ReadOnly(cfg.HTTP.Mode))
	controllerPool.Add(http_swagger.New())
	controllerPool.Add(http_metrics.New())
	controllerPool.Add(http_session.New(authService))
	controllerPool.Add(http_room.New(roomUC, identity))
	controllerPool.Add(http_participant.New(roomUC, identity))
	controllerPool.Add(ws_room.NewController(hub, roomUC, identity))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}
