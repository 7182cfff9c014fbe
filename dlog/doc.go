// Package dlog 为 stardyn 应用提供调试模式日志门面。
//
// 门面包装宿主控制台（clog.Console），为每条消息加上 [HH:MM:SS] 时间戳与
// [名称 v版本] 前缀，并提供一组语义化的辅助方法：生命周期、API 调用、
// 状态变化、用户操作、页面导航、分组日志，以及同步/异步的计时包装。
//
// 调试开关是唯一的闸门：关闭时所有日志方法立即返回，不做格式化、不计时、
// 不调用控制台；计时包装仍然执行被包装的操作并原样返回结果。
//
// 每个应用通常创建两个实例：应用作用域（appName）与模块作用域（moduleName），
// 二者行为一致，只是前缀中注入的名称字段不同。模块作用域额外提供
// LogModuleInit 与 LogServiceInit。
//
// 基本使用：
//
//	app := dlog.MustNewApp()
//	app.Info("hello")                 // [12:00:00] [StardynApp v1.0.0] hello
//	app.LogAPICall("get", "/api/users", 200, 150.5)
//
//	app.Configure(dlog.Patch{
//	    ScopeName:     dlog.Ptr("Shop"),
//	    ShowTimestamp: dlog.Ptr(false),
//	})
//
// 计时：
//
//	users := dlog.Measure(app, "load users", func() []User {
//	    return repo.All()
//	})
//
//	err := app.TimeAsync(ctx, "sync", func(ctx context.Context) error {
//	    return client.Sync(ctx)
//	})
//
// 从配置文件加载并热更新：
//
//	loader := config.MustLoad(config.WithPaths("./config"))
//	_ = app.ApplyConfig(loader, "dlog")
//	_ = app.WatchConfig(ctx, loader, "dlog")
package dlog
