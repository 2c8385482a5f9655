// Package mongo provides MongoDB client initialization and health checking.
//
// New and NewWithDatabase retry the initial connect-and-ping with exponential
// backoff so that a cold Atlas cluster or a brief network hiccup does not
// fail application startup.
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "")
//	if err != nil {
//		log.Fatal("Failed to connect to MongoDB:", err)
//	}
//	defer db.Client().Disconnect(ctx)
//
//	coll := db.Collection("analysis_history")
//
// # Configuration
//
//	MONGODB_URL                 (required when the mongo history backend is selected)
//	MONGODB_DATABASE            (default: jwt_analyzer)
//	MONGODB_CONNECT_TIMEOUT     (default: 10s)
//	MONGODB_MAX_POOL_SIZE       (default: 100)
//	MONGODB_MIN_POOL_SIZE       (default: 1)
//	MONGODB_MAX_CONN_IDLE_TIME  (default: 300s)
//	MONGODB_RETRY_WRITES        (default: true)
//	MONGODB_RETRY_READS         (default: true)
//	MONGODB_RETRY_ATTEMPTS      (default: 3)
//	MONGODB_RETRY_INTERVAL      (default: 5s)
//
// # Error Handling
//
//	ErrEmptyConnectionURL     - MONGODB_URL is empty
//	ErrFailedToConnectToMongo - all retry attempts are exhausted
//	ErrHealthcheckFailed      - the health check ping failed
package mongo
