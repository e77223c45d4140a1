package service

import "SamuraiArchive/internal/model"

// dateLayout 接口与种子数据统一的日期格式
const dateLayout = "2006-01-02"

// HistoricalEvent 静态历史事件（不由战役/武士派生）
type HistoricalEvent struct {
	Year        int
	Date        string
	Title       string
	Type        model.TimelineType
	Description string
}

// HistoricalEvents 内置的历史事件列表，按 (Title, Year) 去重导入
func HistoricalEvents() []HistoricalEvent {
	return []HistoricalEvent{
		{794, "0794-11-22", "Fondation de Heian-kyō", model.TimelinePolitique, "L'empereur Kanmu installe la capitale à Heian-kyō, l'actuelle Kyōto."},
		{939, "0939-12-01", "Révolte de Taira no Masakado", model.TimelinePolitique, "Taira no Masakado se proclame « nouvel empereur » dans le Kantō."},
		{1156, "1156-07-28", "Rébellion de Hōgen", model.TimelinePolitique, "Conflit de succession impériale qui révèle la puissance militaire des clans Taira et Minamoto."},
		{1159, "1159-01-19", "Rébellion de Heiji", model.TimelinePolitique, "Taira no Kiyomori écrase les Minamoto et domine la cour."},
		{1167, "1167-02-11", "Taira no Kiyomori Daijō-daijin", model.TimelinePolitique, "Premier guerrier nommé chancelier de l'Empire."},
		{1180, "1180-05-01", "Début de la guerre de Genpei", model.TimelinePolitique, "Le prince Mochihito appelle les Minamoto à se soulever contre les Taira."},
		{1192, "1192-08-21", "Minamoto no Yoritomo shōgun", model.TimelinePolitique, "Yoritomo reçoit le titre de sei-i taishōgun et fonde le shogunat de Kamakura."},
		{1203, "1203-09-10", "Début de la régence Hōjō", model.TimelinePolitique, "Hōjō Tokimasa devient shikken, régent du shogun."},
		{1221, "1221-06-05", "Guerre de Jōkyū", model.TimelinePolitique, "L'empereur retiré Go-Toba échoue à renverser le shogunat de Kamakura."},
		{1232, "1232-08-10", "Promulgation du Goseibai Shikimoku", model.TimelinePolitique, "Premier code juridique de la classe guerrière."},
		{1274, "1274-11-19", "Première invasion mongole", model.TimelinePolitique, "La flotte de Kubilai Khan débarque dans la baie de Hakata."},
		{1281, "1281-08-15", "Seconde invasion mongole", model.TimelinePolitique, "Un typhon, le kamikaze, disperse la flotte mongole."},
		{1333, "1333-07-04", "Chute du shogunat de Kamakura", model.TimelinePolitique, "Nitta Yoshisada prend Kamakura, les Hōjō se suicident."},
		{1336, "1336-12-11", "Début de l'époque Nanboku-chō", model.TimelinePolitique, "Deux cours impériales rivales, au nord et au sud."},
		{1338, "1338-08-11", "Ashikaga Takauji shōgun", model.TimelinePolitique, "Fondation du shogunat Ashikaga à Muromachi."},
		{1392, "1392-10-27", "Réunification des deux cours", model.TimelinePolitique, "Fin du schisme impérial sous Ashikaga Yoshimitsu."},
		{1467, "1467-05-26", "Début de la guerre d'Ōnin", model.TimelinePolitique, "Kyōto est ravagée, ouverture de l'époque Sengoku."},
		{1543, "1543-09-23", "Arrivée des arquebuses à Tanegashima", model.TimelinePolitique, "Des marchands portugais introduisent les armes à feu au Japon."},
		{1549, "1549-08-15", "Arrivée de François Xavier", model.TimelinePolitique, "Début de la mission jésuite à Kagoshima."},
		{1568, "1568-11-09", "Oda Nobunaga entre à Kyōto", model.TimelinePolitique, "Nobunaga installe Ashikaga Yoshiaki comme shōgun."},
		{1571, "1571-09-30", "Incendie du Enryaku-ji", model.TimelinePolitique, "Nobunaga détruit les monastères du mont Hiei."},
		{1573, "1573-08-15", "Fin du shogunat Ashikaga", model.TimelinePolitique, "Nobunaga chasse Ashikaga Yoshiaki de Kyōto."},
		{1582, "1582-06-21", "Incident du Honnō-ji", model.TimelinePolitique, "Akechi Mitsuhide trahit Oda Nobunaga, qui se donne la mort."},
		{1588, "1588-08-29", "Chasse aux sabres", model.TimelinePolitique, "Toyotomi Hideyoshi confisque les armes des paysans."},
		{1590, "1590-08-04", "Unification du Japon", model.TimelinePolitique, "La reddition des Hōjō d'Odawara achève l'unification sous Hideyoshi."},
		{1592, "1592-05-23", "Invasion de la Corée", model.TimelinePolitique, "Première campagne de Hideyoshi dans la péninsule coréenne."},
		{1603, "1603-03-24", "Tokugawa Ieyasu shōgun", model.TimelinePolitique, "Ieyasu fonde le shogunat d'Edo."},
		{1615, "1615-07-07", "Buke shohatto", model.TimelinePolitique, "Lois régissant les maisons militaires après la chute d'Ōsaka."},
		{1635, "1635-07-01", "Sankin-kōtai", model.TimelinePolitique, "Les daimyō doivent résider en alternance à Edo."},
		{1639, "1639-08-04", "Politique du sakoku", model.TimelinePolitique, "Fermeture du pays, expulsion des Portugais."},
		{1703, "1703-01-30", "Vengeance des 47 rōnin", model.TimelinePolitique, "Les vassaux d'Asano Naganori vengent leur seigneur."},
		{1853, "1853-07-08", "Arrivée du commodore Perry", model.TimelinePolitique, "Les « navires noirs » exigent l'ouverture du Japon."},
		{1867, "1867-11-09", "Restitution du pouvoir à l'empereur", model.TimelinePolitique, "Tokugawa Yoshinobu remet le pouvoir à l'empereur Meiji."},
		{1868, "1868-01-03", "Restauration de Meiji", model.TimelinePolitique, "Proclamation de la restauration du pouvoir impérial."},
		{1876, "1876-03-28", "Haitōrei", model.TimelinePolitique, "Interdiction du port du sabre, fin symbolique des samouraïs."},
		{1877, "1877-09-24", "Fin de la rébellion de Satsuma", model.TimelinePolitique, "Mort de Saigō Takamori à Shiroyama."},
		{1604, "1604-03-01", "Musashi contre l'école Yoshioka", model.TimelineDuel, "Miyamoto Musashi défait Yoshioka Seijūrō à Rendaiji."},
		{1605, "1605-01-01", "Duel d'Ichijōji", model.TimelineDuel, "Musashi affronte seul les disciples de l'école Yoshioka."},
		{1612, "1612-04-13", "Duel de Ganryū-jima", model.TimelineDuel, "Miyamoto Musashi vainc Sasaki Kojirō sur l'île de Funa."},
		{1561, "1561-10-18", "Duel de Kenshin et Shingen", model.TimelineDuel, "Selon la légende, Uesugi Kenshin charge Takeda Shingen qui pare avec son éventail."},
	}
}
